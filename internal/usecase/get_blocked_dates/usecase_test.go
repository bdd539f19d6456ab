package get_blocked_dates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	settingsRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/tenantsettings"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

type fakeStore struct {
	week         []*domain.WorkingHours
	blocks       []*domain.BlockedSlot
	reservations []*domain.Reservation
	settings     *domain.TenantSettings
}

func (f *fakeStore) GetWeek(_ context.Context, _ int64) ([]*domain.WorkingHours, error) {
	return f.week, nil
}

func (f *fakeStore) ListByTenantAndPeriod(_ context.Context, _ int64, startDate, endDate types.Date) ([]*domain.BlockedSlot, error) {
	result := make([]*domain.BlockedSlot, 0)
	for _, b := range f.blocks {
		if !b.Date.Before(startDate) && !b.Date.After(endDate) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeStore) GetByTenantWithFilter(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if filter.StartDate != nil && r.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && r.Date.After(*filter.EndDate) {
			continue
		}
		if !filter.IncludeInactive && !r.IsActive() {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeStore) GetByTenant(_ context.Context, _ int64) (*domain.TenantSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrNotFound
	}
	return f.settings, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

// Tenant works every day of November 2025, 09:00-18:00.
// "Now" is set before the month so no date is hidden by the past-date rule.
var testNow = time.Date(2025, time.October, 20, 12, 0, 0, 0, time.UTC)

func everyDaySchedule() []*domain.WorkingHours {
	week := make([]*domain.WorkingHours, 0, domain.DaysPerWeek)
	for wd := 0; wd < domain.DaysPerWeek; wd++ {
		week = append(week, &domain.WorkingHours{
			TenantID: 1, Weekday: wd, IsOpen: true, StartMinutes: 540, EndMinutes: 1080,
		})
	}
	return week
}

func newTestUseCase(store *fakeStore, now time.Time) *UseCase {
	uc := NewUseCase(store, store, store, store, stubLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func execute(t *testing.T, uc *UseCase) *Response {
	t.Helper()
	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, Year: 2025, Month: 11})
	require.NoError(t, err)
	return resp
}

func TestExecute_OpenMonthHasNoBlockedDates(t *testing.T) {
	store := &fakeStore{week: everyDaySchedule()}
	resp := execute(t, newTestUseCase(store, testNow))

	assert.Empty(t, resp.BlockedDates)
}

func TestExecute_FullDayBlockAppearsInList(t *testing.T) {
	store := &fakeStore{
		week:   everyDaySchedule(),
		blocks: []*domain.BlockedSlot{{TenantID: 1, Date: types.NewDate(2025, time.November, 5)}},
	}
	resp := execute(t, newTestUseCase(store, testNow))

	assert.Equal(t, []types.Date{types.NewDate(2025, time.November, 5)}, resp.BlockedDates)
}

func TestExecute_ClosedWeekdaysAreBlocked(t *testing.T) {
	// Open Monday-Saturday, no record for Sunday
	week := make([]*domain.WorkingHours, 0)
	for wd := 1; wd < domain.DaysPerWeek; wd++ {
		week = append(week, &domain.WorkingHours{
			TenantID: 1, Weekday: wd, IsOpen: true, StartMinutes: 540, EndMinutes: 1080,
		})
	}
	store := &fakeStore{week: week}
	resp := execute(t, newTestUseCase(store, testNow))

	// November 2025 Sundays: 2, 9, 16, 23, 30
	want := []types.Date{
		types.NewDate(2025, time.November, 2),
		types.NewDate(2025, time.November, 9),
		types.NewDate(2025, time.November, 16),
		types.NewDate(2025, time.November, 23),
		types.NewDate(2025, time.November, 30),
	}
	assert.Equal(t, want, resp.BlockedDates)
}

func TestExecute_FullyBookedDayIsBlocked(t *testing.T) {
	// The whole 09:00-18:00 window covered by one long reservation
	store := &fakeStore{
		week: everyDaySchedule(),
		reservations: []*domain.Reservation{
			{TenantID: 1, Date: types.NewDate(2025, time.November, 10), StartMinutes: 540, DurationMinutes: 480, Status: domain.StatusConfirmed},
		},
	}
	// 480 minutes leave 60 free at the end of the day, block them too
	end := types.MinuteOfDay(1080)
	start := types.MinuteOfDay(1020)
	store.blocks = []*domain.BlockedSlot{
		{TenantID: 1, Date: types.NewDate(2025, time.November, 10), StartMinutes: &start, EndMinutes: &end},
	}

	resp := execute(t, newTestUseCase(store, testNow))

	assert.Equal(t, []types.Date{types.NewDate(2025, time.November, 10)}, resp.BlockedDates)
}

func TestExecute_CancelledReservationsDoNotBlock(t *testing.T) {
	store := &fakeStore{
		week: everyDaySchedule(),
		reservations: []*domain.Reservation{
			{TenantID: 1, Date: types.NewDate(2025, time.November, 10), StartMinutes: 540, DurationMinutes: 540, Status: domain.StatusCancelled},
		},
	}
	resp := execute(t, newTestUseCase(store, testNow))

	assert.Empty(t, resp.BlockedDates)
}

func TestExecute_PastDatesAreBlocked(t *testing.T) {
	// "Now" in the middle of the month: days before the 15th are unavailable
	now := time.Date(2025, time.November, 15, 10, 0, 0, 0, time.UTC)
	store := &fakeStore{week: everyDaySchedule()}
	resp := execute(t, newTestUseCase(store, now))

	require.Len(t, resp.BlockedDates, 14)
	assert.Equal(t, types.NewDate(2025, time.November, 1), resp.BlockedDates[0])
	assert.Equal(t, types.NewDate(2025, time.November, 14), resp.BlockedDates[13])
}

func TestExecute_DatesBeyondAdvanceLimitAreBlocked(t *testing.T) {
	store := &fakeStore{
		week: everyDaySchedule(),
		settings: &domain.TenantSettings{
			TenantID:           1,
			GranularityMinutes: 15,
			AdvanceBookingDays: 20,
		},
	}
	// Horizon: 2025-10-20 + 20 days = 2025-11-09
	resp := execute(t, newTestUseCase(store, testNow))

	require.NotEmpty(t, resp.BlockedDates)
	assert.Equal(t, types.NewDate(2025, time.November, 10), resp.BlockedDates[0])
	assert.Len(t, resp.BlockedDates, 21, "November 10-30 are beyond the horizon")
}

func TestExecute_RepresentativeDurationMatters(t *testing.T) {
	// 30-minute working window fits the default granularity slot
	// but not a 90-minute service
	week := []*domain.WorkingHours{}
	for wd := 0; wd < domain.DaysPerWeek; wd++ {
		week = append(week, &domain.WorkingHours{
			TenantID: 1, Weekday: wd, IsOpen: true, StartMinutes: 600, EndMinutes: 630,
		})
	}
	store := &fakeStore{week: week}
	uc := newTestUseCase(store, testNow)

	short, err := uc.Execute(context.Background(), &Request{TenantID: 1, Year: 2025, Month: 11})
	require.NoError(t, err)
	assert.Empty(t, short.BlockedDates, "15-minute slots fit the short window")

	long, err := uc.Execute(context.Background(), &Request{TenantID: 1, Year: 2025, Month: 11, DurationMinutes: 90})
	require.NoError(t, err)
	assert.Len(t, long.BlockedDates, 30, "no day fits a 90-minute service")
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeStore{week: everyDaySchedule()}, testNow)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero tenant", req: &Request{Year: 2025, Month: 11}},
		{name: "month out of range", req: &Request{TenantID: 1, Year: 2025, Month: 13}},
		{name: "zero month", req: &Request{TenantID: 1, Year: 2025}},
		{name: "year out of range", req: &Request{TenantID: 1, Year: 1990, Month: 5}},
		{name: "negative duration", req: &Request{TenantID: 1, Year: 2025, Month: 11, DurationMinutes: -30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
