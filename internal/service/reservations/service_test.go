package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	resRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/reservation"
	"github.com/laia-platform/LAIA-SchedulingService/internal/service/reservations/models"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

type fakeRepo struct {
	reservations map[int64]*domain.Reservation
}

func (f *fakeRepo) GetByID(_ context.Context, tenantID, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok || r.TenantID != tenantID {
		return nil, resRepo.ErrNotFound
	}
	return r, nil
}

func (f *fakeRepo) GetByTenantWithFilter(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if r.TenantID != filter.TenantID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.Status == nil && !filter.IncludeInactive && !r.IsActive() {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, tenantID, id int64, status domain.ReservationStatus) error {
	r, ok := f.reservations[id]
	if !ok || r.TenantID != tenantID {
		return resRepo.ErrNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, tenantID, id int64, reason string) error {
	r, ok := f.reservations[id]
	if !ok || r.TenantID != tenantID {
		return resRepo.ErrNotFound
	}
	r.Status = domain.StatusCancelled
	r.CancellationReason = &reason
	now := time.Now()
	r.CancelledAt = &now
	return nil
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) InvalidateTenant(_ context.Context, _ int64) {
	f.calls++
}

func newTestService(repo *fakeRepo, inv *fakeInvalidator) *Service {
	return NewService(repo, inv, stubLogger{})
}

func seedReservation(status domain.ReservationStatus) *fakeRepo {
	return &fakeRepo{reservations: map[int64]*domain.Reservation{
		1: {
			ID: 1, TenantID: 10, ServiceID: 7,
			Date:            types.NewDate(2025, time.October, 13),
			StartMinutes:    600,
			DurationMinutes: 60,
			Status:          status,
		},
	}}
}

func TestGetByID(t *testing.T) {
	svc := newTestService(seedReservation(domain.StatusConfirmed), &fakeInvalidator{})

	resp, err := svc.GetByID(context.Background(), 10, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
	assert.Equal(t, "2025-10-13", resp.Date)
}

func TestGetByID_WrongTenant(t *testing.T) {
	svc := newTestService(seedReservation(domain.StatusConfirmed), &fakeInvalidator{})

	_, err := svc.GetByID(context.Background(), 99, 1)

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel(t *testing.T) {
	repo := seedReservation(domain.StatusConfirmed)
	inv := &fakeInvalidator{}
	svc := newTestService(repo, inv)

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		TenantID: 10,
		Reason:   "client request",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, repo.reservations[1].Status)
	require.NotNil(t, repo.reservations[1].CancellationReason)
	assert.Equal(t, "client request", *repo.reservations[1].CancellationReason)
	assert.NotNil(t, repo.reservations[1].CancelledAt)
	assert.Equal(t, 1, inv.calls, "cancellation frees the slot, cache must be invalidated")
}

func TestCancel_TerminalStatuses(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			inv := &fakeInvalidator{}
			svc := newTestService(seedReservation(status), inv)

			err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{TenantID: 10})

			assert.ErrorIs(t, err, ErrCannotCancel)
			assert.Zero(t, inv.calls)
		})
	}
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	repo := seedReservation(domain.StatusPending)
	inv := &fakeInvalidator{}
	svc := newTestService(repo, inv)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		TenantID: 10,
		Status:   "confirmed",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, repo.reservations[1].Status)
	assert.Zero(t, inv.calls, "confirming does not change availability")
}

func TestUpdateStatus_CancellationInvalidatesCache(t *testing.T) {
	repo := seedReservation(domain.StatusPending)
	inv := &fakeInvalidator{}
	svc := newTestService(repo, inv)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		TenantID: 10,
		Status:   "cancelled",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, inv.calls)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	svc := newTestService(seedReservation(domain.StatusCompleted), &fakeInvalidator{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		TenantID: 10,
		Status:   "confirmed",
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc := newTestService(seedReservation(domain.StatusPending), &fakeInvalidator{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		TenantID: 10,
		Status:   "NO_SHOW",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetTenantReservations_FilterExcludesCancelled(t *testing.T) {
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{
		1: {ID: 1, TenantID: 10, Date: types.NewDate(2025, time.October, 13), StartMinutes: 600, DurationMinutes: 60, Status: domain.StatusConfirmed},
		2: {ID: 2, TenantID: 10, Date: types.NewDate(2025, time.October, 13), StartMinutes: 720, DurationMinutes: 60, Status: domain.StatusCancelled},
	}}
	svc := newTestService(repo, &fakeInvalidator{})

	resp, err := svc.GetTenantReservations(context.Background(), &models.GetTenantReservationsRequest{TenantID: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)

	all, err := svc.GetTenantReservations(context.Background(), &models.GetTenantReservationsRequest{
		TenantID:        10,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, all.Reservations, 2)
}

func TestGetTenantReservations_InvalidFilter(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeInvalidator{})

	badDate := "13.10.2025"
	_, err := svc.GetTenantReservations(context.Background(), &models.GetTenantReservationsRequest{
		TenantID:  10,
		StartDate: &badDate,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
