package get_available_slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	settingsRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/tenantsettings"
	whRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/workinghours"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

type fakeWorkingHoursRepo struct {
	week  map[int]*domain.WorkingHours
	calls int
}

func (f *fakeWorkingHoursRepo) GetByTenantAndWeekday(_ context.Context, _ int64, weekday int) (*domain.WorkingHours, error) {
	f.calls++
	wh, ok := f.week[weekday]
	if !ok {
		return nil, whRepo.ErrNotFound
	}
	return wh, nil
}

type fakeBlockedSlotRepo struct {
	slots []*domain.BlockedSlot
}

func (f *fakeBlockedSlotRepo) GetByTenantAndDate(_ context.Context, _ int64, _ types.Date) ([]*domain.BlockedSlot, error) {
	return f.slots, nil
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) GetActiveByTenantAndDate(_ context.Context, _ int64, _ types.Date) ([]*domain.Reservation, error) {
	return f.reservations, nil
}

type fakeSettingsRepo struct {
	settings *domain.TenantSettings
}

func (f *fakeSettingsRepo) GetByTenant(_ context.Context, _ int64) (*domain.TenantSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrNotFound
	}
	return f.settings, nil
}

type fakeCache struct {
	data map[string][]types.MinuteOfDay
	sets int
}

func cacheKey(tenantID int64, date types.Date, duration int) string {
	return fmt.Sprintf("%d:%s:%d", tenantID, date, duration)
}

func (f *fakeCache) Get(_ context.Context, tenantID int64, date types.Date, duration int) ([]types.MinuteOfDay, bool) {
	slots, ok := f.data[cacheKey(tenantID, date, duration)]
	return slots, ok
}

func (f *fakeCache) Set(_ context.Context, tenantID int64, date types.Date, duration int, slots []types.MinuteOfDay) {
	if f.data == nil {
		f.data = make(map[string][]types.MinuteOfDay)
	}
	f.data[cacheKey(tenantID, date, duration)] = slots
	f.sets++
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

func newTestUseCase(
	wh *fakeWorkingHoursRepo,
	blocks *fakeBlockedSlotRepo,
	res *fakeReservationRepo,
	settings *fakeSettingsRepo,
	cache *fakeCache,
	now time.Time,
) *UseCase {
	uc := NewUseCase(wh, blocks, res, settings, cache, stubLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

// 2025-10-13 is a Monday; "now" is the Friday before at noon.
var (
	testMonday = types.NewDate(2025, time.October, 13)
	testNow    = time.Date(2025, time.October, 10, 12, 0, 0, 0, time.UTC)
)

func mondaySchedule() *fakeWorkingHoursRepo {
	return &fakeWorkingHoursRepo{week: map[int]*domain.WorkingHours{
		1: {TenantID: 1, Weekday: 1, IsOpen: true, StartMinutes: 540, EndMinutes: 1080},
	}}
}

func TestExecute_SlotsAroundExistingReservation(t *testing.T) {
	res := &fakeReservationRepo{reservations: []*domain.Reservation{
		{TenantID: 1, Date: testMonday, StartMinutes: 600, DurationMinutes: 60, Status: domain.StatusConfirmed},
	}}
	cache := &fakeCache{}
	uc := newTestUseCase(mondaySchedule(), &fakeBlockedSlotRepo{}, res, &fakeSettingsRepo{}, cache, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:        1,
		Date:            testMonday,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	starts := make([]int, len(resp.Slots))
	for i, s := range resp.Slots {
		starts[i] = int(s.StartMinutes)
	}

	assert.Contains(t, starts, 540, "09:00 borders the reservation and stays available")
	assert.Contains(t, starts, 660, "11:00 borders the reservation and stays available")
	assert.NotContains(t, starts, 555)
	assert.NotContains(t, starts, 600)
	assert.NotContains(t, starts, 645)

	assert.Equal(t, 1, cache.sets, "computed result must be cached")
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	wh := mondaySchedule()
	uc := newTestUseCase(wh, &fakeBlockedSlotRepo{}, &fakeReservationRepo{}, &fakeSettingsRepo{}, &fakeCache{}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:        1,
		Date:            types.NewDate(2025, time.October, 6),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Zero(t, wh.calls, "past dates short-circuit before touching storage")
}

func TestExecute_MissingScheduleMeansClosed(t *testing.T) {
	uc := newTestUseCase(
		&fakeWorkingHoursRepo{week: map[int]*domain.WorkingHours{}},
		&fakeBlockedSlotRepo{}, &fakeReservationRepo{}, &fakeSettingsRepo{}, &fakeCache{}, testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:        1,
		Date:            testMonday,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

func TestExecute_FullDayBlockReturnsEmpty(t *testing.T) {
	blocks := &fakeBlockedSlotRepo{slots: []*domain.BlockedSlot{
		{TenantID: 1, Date: testMonday},
	}}
	uc := newTestUseCase(mondaySchedule(), blocks, &fakeReservationRepo{}, &fakeSettingsRepo{}, &fakeCache{}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:        1,
		Date:            testMonday,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

func TestExecute_CacheHitSkipsStorage(t *testing.T) {
	wh := mondaySchedule()
	cache := &fakeCache{}
	cache.Set(context.Background(), 1, testMonday, 60, []types.MinuteOfDay{540, 660})

	uc := newTestUseCase(wh, &fakeBlockedSlotRepo{}, &fakeReservationRepo{}, &fakeSettingsRepo{}, cache, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:        1,
		Date:            testMonday,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 2)
	assert.Zero(t, wh.calls)
}

func TestExecute_AdvanceBookingLimit(t *testing.T) {
	settings := &fakeSettingsRepo{settings: &domain.TenantSettings{
		TenantID:           1,
		GranularityMinutes: 15,
		AdvanceBookingDays: 2,
	}}
	uc := newTestUseCase(mondaySchedule(), &fakeBlockedSlotRepo{}, &fakeReservationRepo{}, settings, &fakeCache{}, testNow)

	// Monday is three days past "now", the limit allows two
	_, err := uc.Execute(context.Background(), &Request{
		TenantID:        1,
		Date:            testMonday,
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_LeadTimeFiltersToday(t *testing.T) {
	// "now" is Monday 10:05, lead time 30 minutes: nothing before 10:35
	now := time.Date(2025, time.October, 13, 10, 5, 0, 0, time.UTC)
	settings := &fakeSettingsRepo{settings: &domain.TenantSettings{
		TenantID:           1,
		GranularityMinutes: 15,
		LeadTimeMinutes:    30,
	}}
	uc := newTestUseCase(mondaySchedule(), &fakeBlockedSlotRepo{}, &fakeReservationRepo{}, settings, &fakeCache{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:        1,
		Date:            testMonday,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.MinuteOfDay(645), resp.Slots[0].StartMinutes, "first slot at 10:45")
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(mondaySchedule(), &fakeBlockedSlotRepo{}, &fakeReservationRepo{}, &fakeSettingsRepo{}, &fakeCache{}, testNow)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero tenant", req: &Request{Date: testMonday, DurationMinutes: 60}},
		{name: "zero date", req: &Request{TenantID: 1, DurationMinutes: 60}},
		{name: "zero duration", req: &Request{TenantID: 1, Date: testMonday}},
		{name: "excessive duration", req: &Request{TenantID: 1, Date: testMonday, DurationMinutes: 600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
