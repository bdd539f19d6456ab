package create_booking

import (
	"context"
	"sync"
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

// fakeStore is an in-memory stand-in for the three schedule repositories.
// Not synchronized on its own: the concurrency test relies on serialTxManager
// serializing access the same way a serializable transaction would.
type fakeStore struct {
	week         map[int]*domain.WorkingHours
	blocks       []*domain.BlockedSlot
	reservations []*domain.Reservation
	settings     *domain.TenantSettings
	nextID       int64
}

func (f *fakeStore) GetByTenantAndWeekday(_ context.Context, _ int64, weekday int) (*domain.WorkingHours, error) {
	wh, ok := f.week[weekday]
	if !ok {
		return nil, whRepo.ErrNotFound
	}
	return wh, nil
}

func (f *fakeStore) GetByTenantAndDate(_ context.Context, _ int64, date types.Date) ([]*domain.BlockedSlot, error) {
	result := make([]*domain.BlockedSlot, 0)
	for _, b := range f.blocks {
		if b.Date.Equal(date) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeStore) GetActiveByTenantAndDate(_ context.Context, _ int64, date types.Date) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if r.Date.Equal(date) && r.IsActive() {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeStore) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.nextID++
	res.ID = f.nextID
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	f.reservations = append(f.reservations, res)
	return res, nil
}

func (f *fakeStore) GetByTenant(_ context.Context, _ int64) (*domain.TenantSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrNotFound
	}
	return f.settings, nil
}

// serialTxManager serializes transaction bodies with a mutex, mimicking
// what SERIALIZABLE isolation guarantees for conflicting bookings.
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeInvalidator) InvalidateTenant(_ context.Context, _ int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

// 2025-10-13 is a Monday; "now" is the Friday before at noon.
var (
	testMonday = types.NewDate(2025, time.October, 13)
	testNow    = time.Date(2025, time.October, 10, 12, 0, 0, 0, time.UTC)
)

func newTestStore() *fakeStore {
	return &fakeStore{
		week: map[int]*domain.WorkingHours{
			1: {TenantID: 1, Weekday: 1, IsOpen: true, StartMinutes: 540, EndMinutes: 1080},
		},
	}
}

func newTestUseCase(store *fakeStore, inv *fakeInvalidator, now time.Time) *UseCase {
	uc := NewUseCase(store, store, store, store, inv, &serialTxManager{}, stubLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		TenantID:        1,
		ServiceID:       7,
		Date:            testMonday,
		StartMinutes:    600,
		DurationMinutes: 60,
	}
}

func TestExecute_CreatesConfirmedReservation(t *testing.T) {
	store := newTestStore()
	inv := &fakeInvalidator{}
	uc := newTestUseCase(store, inv, testNow)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status, "default status is confirmed")
	assert.Equal(t, types.MinuteOfDay(660), resp.EndMinutes)
	assert.Len(t, store.reservations, 1)
	assert.Equal(t, 1, inv.calls, "availability cache must be invalidated")
}

func TestExecute_PendingStatusAllowed(t *testing.T) {
	uc := newTestUseCase(newTestStore(), &fakeInvalidator{}, testNow)

	req := validRequest()
	req.Status = "pending"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
}

func TestExecute_OverlappingReservationRejected(t *testing.T) {
	store := newTestStore()
	store.reservations = []*domain.Reservation{
		{ID: 1, TenantID: 1, Date: testMonday, StartMinutes: 600, DurationMinutes: 60, Status: domain.StatusConfirmed},
	}
	inv := &fakeInvalidator{}
	uc := newTestUseCase(store, inv, testNow)

	req := validRequest()
	req.StartMinutes = 630

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, store.reservations, 1, "no new reservation on conflict")
	assert.Zero(t, inv.calls, "cache untouched on failure")
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	store := newTestStore()
	store.reservations = []*domain.Reservation{
		{ID: 1, TenantID: 1, Date: testMonday, StartMinutes: 600, DurationMinutes: 60, Status: domain.StatusConfirmed},
	}
	uc := newTestUseCase(store, &fakeInvalidator{}, testNow)

	// Starts exactly where the existing reservation ends
	req := validRequest()
	req.StartMinutes = 660

	_, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_CancelledReservationReleasesSlot(t *testing.T) {
	store := newTestStore()
	store.reservations = []*domain.Reservation{
		{ID: 1, TenantID: 1, Date: testMonday, StartMinutes: 600, DurationMinutes: 60, Status: domain.StatusCancelled},
	}
	uc := newTestUseCase(store, &fakeInvalidator{}, testNow)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err, "cancelled reservation must not block the slot")
}

func TestExecute_BlockedIntervalRejected(t *testing.T) {
	store := newTestStore()
	start := types.MinuteOfDay(570)
	end := types.MinuteOfDay(630)
	store.blocks = []*domain.BlockedSlot{
		{ID: 1, TenantID: 1, Date: testMonday, StartMinutes: &start, EndMinutes: &end},
	}
	uc := newTestUseCase(store, &fakeInvalidator{}, testNow)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_FullDayBlockRejected(t *testing.T) {
	store := newTestStore()
	store.blocks = []*domain.BlockedSlot{{ID: 1, TenantID: 1, Date: testMonday}}
	uc := newTestUseCase(store, &fakeInvalidator{}, testNow)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	store := newTestStore()
	store.week = map[int]*domain.WorkingHours{}
	uc := newTestUseCase(store, &fakeInvalidator{}, testNow)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTenantClosed)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(newTestStore(), &fakeInvalidator{}, testNow)

	req := validRequest()
	req.Date = types.NewDate(2025, time.October, 6)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_AdvanceBookingLimit(t *testing.T) {
	store := newTestStore()
	store.settings = &domain.TenantSettings{
		TenantID:           1,
		GranularityMinutes: 15,
		AdvanceBookingDays: 2,
	}
	uc := newTestUseCase(store, &fakeInvalidator{}, testNow)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_SlotPlacement(t *testing.T) {
	tests := []struct {
		name  string
		start types.MinuteOfDay
	}{
		{name: "before opening", start: 480},
		{name: "ends after closing", start: 1050},
		{name: "off grid", start: 605},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(newTestStore(), &fakeInvalidator{}, testNow)

			req := validRequest()
			req.StartMinutes = tt.start

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestExecute_LeadTimeOnCurrentDay(t *testing.T) {
	// "now" is Monday 09:45, lead time 30 minutes
	now := time.Date(2025, time.October, 13, 9, 45, 0, 0, time.UTC)
	store := newTestStore()
	store.settings = &domain.TenantSettings{
		TenantID:           1,
		GranularityMinutes: 15,
		LeadTimeMinutes:    30,
	}
	uc := newTestUseCase(store, &fakeInvalidator{}, now)

	req := validRequest()
	req.StartMinutes = 600 // 10:00, earliest allowed is 10:15

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	req.StartMinutes = 615
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(newTestStore(), &fakeInvalidator{}, testNow)

	longNotes := string(make([]byte, domain.MaxNotesLength+1))

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero tenant", mutate: func(r *Request) { r.TenantID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = types.Date{} }},
		{name: "negative start", mutate: func(r *Request) { r.StartMinutes = -10 }},
		{name: "zero duration", mutate: func(r *Request) { r.DurationMinutes = 0 }},
		{name: "crosses midnight", mutate: func(r *Request) { r.StartMinutes = 1400; r.DurationMinutes = 60 }},
		{name: "unknown status", mutate: func(r *Request) { r.Status = "approved" }},
		{name: "terminal initial status", mutate: func(r *Request) { r.Status = "completed" }},
		{name: "notes too long", mutate: func(r *Request) { r.Notes = &longNotes }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// Two clients race for the same slot: exactly one wins, the loser gets
// ErrSlotNotAvailable from the re-check inside the transaction.
func TestExecute_ConcurrentBookingsSameSlot(t *testing.T) {
	store := newTestStore()
	uc := newTestUseCase(store, &fakeInvalidator{}, testNow)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		}
	}

	assert.Equal(t, 1, successes, "exactly one of the racing bookings must win")
	assert.Len(t, store.reservations, 1)
}
