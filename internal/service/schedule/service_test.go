package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	blockRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/blockedslot"
	settingsRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/tenantsettings"
	"github.com/laia-platform/LAIA-SchedulingService/internal/service/schedule/models"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/ptr"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

type fakeStore struct {
	week     map[int]*domain.WorkingHours
	blocks   map[int64]*domain.BlockedSlot
	settings *domain.TenantSettings
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		week:   make(map[int]*domain.WorkingHours),
		blocks: make(map[int64]*domain.BlockedSlot),
	}
}

func (f *fakeStore) GetWeek(_ context.Context, _ int64) ([]*domain.WorkingHours, error) {
	result := make([]*domain.WorkingHours, 0, len(f.week))
	for wd := 0; wd < domain.DaysPerWeek; wd++ {
		if wh, ok := f.week[wd]; ok {
			result = append(result, wh)
		}
	}
	return result, nil
}

func (f *fakeStore) Upsert(_ context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error) {
	f.week[wh.Weekday] = wh
	return wh, nil
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

func (f *fakeStore) Create(_ context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	f.nextID++
	slot.ID = f.nextID
	slot.CreatedAt = time.Now()
	f.blocks[slot.ID] = slot
	return slot, nil
}

func (f *fakeStore) Delete(_ context.Context, tenantID, id int64) error {
	b, ok := f.blocks[id]
	if !ok || b.TenantID != tenantID {
		return blockRepo.ErrNotFound
	}
	delete(f.blocks, id)
	return nil
}

func (f *fakeStore) GetByTenant(_ context.Context, _ int64) (*domain.TenantSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrNotFound
	}
	return f.settings, nil
}

func (f *fakeStore) UpsertSettings(_ context.Context, settings *domain.TenantSettings) (*domain.TenantSettings, error) {
	f.settings = settings
	return settings, nil
}

// settingsAdapter splits the settings Upsert from the working-hours Upsert
// that share a name on fakeStore.
type settingsAdapter struct {
	store *fakeStore
}

func (a settingsAdapter) GetByTenant(ctx context.Context, tenantID int64) (*domain.TenantSettings, error) {
	return a.store.GetByTenant(ctx, tenantID)
}

func (a settingsAdapter) Upsert(ctx context.Context, settings *domain.TenantSettings) (*domain.TenantSettings, error) {
	return a.store.UpsertSettings(ctx, settings)
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) InvalidateTenant(_ context.Context, _ int64) {
	f.calls++
}

func newTestService(store *fakeStore, inv *fakeInvalidator) *Service {
	return NewService(store, store, settingsAdapter{store: store}, inv, stubLogger{})
}

func TestGetWeekSchedule_FillsMissingDaysAsClosed(t *testing.T) {
	store := newFakeStore()
	store.week[1] = &domain.WorkingHours{TenantID: 10, Weekday: 1, IsOpen: true, StartMinutes: 540, EndMinutes: 1080}
	svc := newTestService(store, &fakeInvalidator{})

	resp, err := svc.GetWeekSchedule(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, resp.Days, 7)
	assert.True(t, resp.Days[1].IsOpen)
	assert.Equal(t, "09:00", *resp.Days[1].StartTime)
	assert.Equal(t, "18:00", *resp.Days[1].EndTime)
	for _, wd := range []int{0, 2, 3, 4, 5, 6} {
		assert.False(t, resp.Days[wd].IsOpen, "weekday %d has no record and must be closed", wd)
		assert.Nil(t, resp.Days[wd].StartTime)
	}
}

func TestUpdateWeekSchedule(t *testing.T) {
	store := newFakeStore()
	inv := &fakeInvalidator{}
	svc := newTestService(store, inv)

	resp, err := svc.UpdateWeekSchedule(context.Background(), &models.UpdateWeekScheduleRequest{
		TenantID: 10,
		Days: []models.DaySchedule{
			{Weekday: 1, IsOpen: true, StartTime: ptr.Ptr("09:00"), EndTime: ptr.Ptr("18:00")},
			{Weekday: 0, IsOpen: false},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Days[1].IsOpen)
	assert.Equal(t, types.MinuteOfDay(540), store.week[1].StartMinutes)
	assert.Equal(t, 1, inv.calls)
}

func TestUpdateWeekSchedule_Invalid(t *testing.T) {
	tests := []struct {
		name string
		days []models.DaySchedule
	}{
		{name: "no days", days: nil},
		{name: "weekday out of range", days: []models.DaySchedule{{Weekday: 7, IsOpen: false}}},
		{name: "duplicate weekday", days: []models.DaySchedule{{Weekday: 1}, {Weekday: 1}}},
		{name: "open without times", days: []models.DaySchedule{{Weekday: 1, IsOpen: true}}},
		{name: "end before start", days: []models.DaySchedule{
			{Weekday: 1, IsOpen: true, StartTime: ptr.Ptr("18:00"), EndTime: ptr.Ptr("09:00")},
		}},
		{name: "bad time format", days: []models.DaySchedule{
			{Weekday: 1, IsOpen: true, StartTime: ptr.Ptr("9am"), EndTime: ptr.Ptr("18:00")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			inv := &fakeInvalidator{}
			svc := newTestService(store, inv)

			_, err := svc.UpdateWeekSchedule(context.Background(), &models.UpdateWeekScheduleRequest{
				TenantID: 10,
				Days:     tt.days,
			})

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, store.week, "nothing may be written on validation failure")
			assert.Zero(t, inv.calls)
		})
	}
}

func TestCreateBlockedSlot_AllDay(t *testing.T) {
	store := newFakeStore()
	inv := &fakeInvalidator{}
	svc := newTestService(store, inv)

	resp, err := svc.CreateBlockedSlot(context.Background(), &models.CreateBlockedSlotRequest{
		TenantID: 10,
		Date:     "2025-10-15",
		Reason:   "renovation",
	})
	require.NoError(t, err)

	assert.True(t, resp.AllDay)
	assert.Nil(t, resp.StartTime)
	assert.Equal(t, 1, inv.calls)
}

func TestCreateBlockedSlot_Range(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeInvalidator{})

	resp, err := svc.CreateBlockedSlot(context.Background(), &models.CreateBlockedSlotRequest{
		TenantID:  10,
		Date:      "2025-10-15",
		StartTime: ptr.Ptr("12:00"),
		EndTime:   ptr.Ptr("13:00"),
	})
	require.NoError(t, err)

	assert.False(t, resp.AllDay)
	assert.Equal(t, "12:00", *resp.StartTime)
	assert.Equal(t, "13:00", *resp.EndTime)
}

func TestCreateBlockedSlot_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  *models.CreateBlockedSlotRequest
	}{
		{name: "bad date", req: &models.CreateBlockedSlotRequest{TenantID: 10, Date: "15.10.2025"}},
		{name: "start without end", req: &models.CreateBlockedSlotRequest{
			TenantID: 10, Date: "2025-10-15", StartTime: ptr.Ptr("12:00"),
		}},
		{name: "end before start", req: &models.CreateBlockedSlotRequest{
			TenantID: 10, Date: "2025-10-15", StartTime: ptr.Ptr("13:00"), EndTime: ptr.Ptr("12:00"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFakeStore(), &fakeInvalidator{})

			_, err := svc.CreateBlockedSlot(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDeleteBlockedSlot(t *testing.T) {
	store := newFakeStore()
	inv := &fakeInvalidator{}
	svc := newTestService(store, inv)

	created, err := svc.CreateBlockedSlot(context.Background(), &models.CreateBlockedSlotRequest{
		TenantID: 10,
		Date:     "2025-10-15",
	})
	require.NoError(t, err)

	err = svc.DeleteBlockedSlot(context.Background(), 10, created.ID)
	require.NoError(t, err)
	assert.Empty(t, store.blocks)

	err = svc.DeleteBlockedSlot(context.Background(), 10, created.ID)
	assert.ErrorIs(t, err, ErrBlockedSlotNotFound)
}

func TestDeleteBlockedSlot_WrongTenant(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeInvalidator{})

	created, err := svc.CreateBlockedSlot(context.Background(), &models.CreateBlockedSlotRequest{
		TenantID: 10,
		Date:     "2025-10-15",
	})
	require.NoError(t, err)

	err = svc.DeleteBlockedSlot(context.Background(), 99, created.ID)

	assert.ErrorIs(t, err, ErrBlockedSlotNotFound)
	assert.Len(t, store.blocks, 1, "foreign tenant must not delete the block")
}

func TestGetSettings_DefaultsWhenMissing(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeInvalidator{})

	resp, err := svc.GetSettings(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultGranularityMinutes, resp.GranularityMinutes)
	assert.Equal(t, domain.DefaultLeadTimeMinutes, resp.LeadTimeMinutes)
	assert.Equal(t, domain.DefaultAdvanceBookingDays, resp.AdvanceBookingDays)
}

func TestUpdateSettings(t *testing.T) {
	store := newFakeStore()
	inv := &fakeInvalidator{}
	svc := newTestService(store, inv)

	resp, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		TenantID:           10,
		GranularityMinutes: 30,
		LeadTimeMinutes:    60,
		AdvanceBookingDays: 14,
	})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.GranularityMinutes)
	assert.Equal(t, 30, store.settings.GranularityMinutes)
	assert.Equal(t, 1, inv.calls)
}

func TestUpdateSettings_OutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateSettingsRequest
	}{
		{name: "granularity too small", req: &models.UpdateSettingsRequest{TenantID: 10, GranularityMinutes: 1}},
		{name: "granularity too large", req: &models.UpdateSettingsRequest{TenantID: 10, GranularityMinutes: 500}},
		{name: "negative lead time", req: &models.UpdateSettingsRequest{TenantID: 10, GranularityMinutes: 15, LeadTimeMinutes: -5}},
		{name: "advance days too large", req: &models.UpdateSettingsRequest{TenantID: 10, GranularityMinutes: 15, AdvanceBookingDays: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFakeStore(), &fakeInvalidator{})

			_, err := svc.UpdateSettings(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
