package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	resRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/reservation"
	"github.com/laia-platform/LAIA-SchedulingService/internal/service/reservations/models"
)

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	reservationRepo ReservationRepository
	cache           CacheInvalidator
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		cache:           cache,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID в рамках тенанта
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for tenant=%d", id, tenantID)

	reservation, err := s.reservationRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, resRepo.ErrNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found for tenant=%d", id, tenantID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// GetTenantReservations получает бронирования тенанта с гибкой фильтрацией.
// Поддерживает фильтрацию по периоду, статусу и включению отменённых.
func (s *Service) GetTenantReservations(ctx context.Context, req *models.GetTenantReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetTenantReservations: fetching reservations for tenant=%d", req.TenantID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTenantReservations: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	reservations, err := s.reservationRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTenantReservations: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: GetTenantReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTenantReservations: fetched %d reservations for tenant=%d", len(reservations), req.TenantID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование.
// Отмена допустима только из статусов pending и confirmed. После отмены
// слот сразу освобождается, поэтому кеш доступности сбрасывается.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d for tenant=%d", id, req.TenantID)

	if len(req.Reason) > domain.MaxReasonLength {
		s.logger.Warn("Cancel: reason too long for reservation id=%d", id)
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, req.TenantID, id)
	if err != nil {
		if errors.Is(err, resRepo.ErrNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found for tenant=%d", id, req.TenantID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, reservation.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, req.TenantID, id, req.Reason); err != nil {
		if errors.Is(err, resRepo.ErrNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Отмена освобождает слот - сбрасываем кеш доступности
	s.cache.InvalidateTenant(ctx, req.TenantID)

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return nil
}

// UpdateStatus обновляет статус бронирования с проверкой допустимости перехода
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s for tenant=%d",
		id, req.Status, req.TenantID)

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, req.TenantID, id)
	if err != nil {
		if errors.Is(err, resRepo.ErrNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found for tenant=%d", id, req.TenantID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for reservation id=%d",
			reservation.Status, newStatus, id)
		return ErrInvalidTransition
	}

	if err := s.reservationRepo.UpdateStatus(ctx, req.TenantID, id, newStatus); err != nil {
		if errors.Is(err, resRepo.ErrNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Переход в cancelled освобождает слот
	if newStatus == domain.StatusCancelled {
		s.cache.InvalidateTenant(ctx, req.TenantID)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", id, newStatus)
	return nil
}
