package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	resRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/reservation"
	settingsRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/tenantsettings"
	whRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/workinghours"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo  ReservationRepository
	workingHoursRepo WorkingHoursRepository
	blockedSlotRepo  BlockedSlotRepository
	settingsRepo     SettingsRepository
	cache            CacheInvalidator
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	workingHoursRepo WorkingHoursRepository,
	blockedSlotRepo BlockedSlotRepository,
	settingsRepo SettingsRepository,
	cache CacheInvalidator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:  reservationRepo,
		workingHoursRepo: workingHoursRepo,
		blockedSlotRepo:  blockedSlotRepo,
		settingsRepo:     settingsRepo,
		cache:            cache,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Все проверки доступности и вставка идут в одной сериализуемой транзакции:
// два параллельных запроса на пересекающиеся слоты не могут пройти оба.
// Exclusion constraint в БД остаётся последней линией защиты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%d, service=%d, date=%s, start=%s, duration=%d",
		req.TenantID, req.ServiceID, req.Date, req.StartMinutes, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	today := types.DateOf(now)

	// Статус по умолчанию - confirmed
	status := domain.StatusConfirmed
	if req.Status != "" {
		status = domain.ReservationStatus(req.Status)
	}

	var result *domain.Reservation

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем настройки тенанта (дефолты, если не настроены)
		settings, err := uc.settingsRepo.GetByTenant(txCtx, req.TenantID)
		if err != nil {
			if !errors.Is(err, settingsRepo.ErrNotFound) {
				uc.logger.Error("CreateBooking: failed to get settings for tenant=%d: %v", req.TenantID, err)
				return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
			}
			settings = domain.DefaultTenantSettings(req.TenantID)
		}

		// 3.2. Валидация даты: прошлое и горизонт бронирования
		if err := validateDate(req.Date, today, settings.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 3.3. Получаем рабочие часы. Отсутствие записи = закрытый день
		workingHours, err := uc.workingHoursRepo.GetByTenantAndWeekday(txCtx, req.TenantID, req.Date.Weekday())
		if err != nil {
			if errors.Is(err, whRepo.ErrNotFound) {
				uc.logger.Warn("CreateBooking: tenant=%d has no schedule for weekday=%d", req.TenantID, req.Date.Weekday())
				return ErrTenantClosed
			}
			uc.logger.Error("CreateBooking: failed to get working hours: %v", err)
			return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
		}
		if !workingHours.IsOpen {
			uc.logger.Warn("CreateBooking: tenant=%d is closed on %s", req.TenantID, req.Date)
			return ErrTenantClosed
		}

		// 3.4. Слот должен попадать в сетку и помещаться в рабочее окно
		if err := validateSlotPlacement(workingHours.Window(), req.StartMinutes, req.DurationMinutes, settings.GranularityMinutes); err != nil {
			uc.logger.Warn("CreateBooking: slot placement failed: %v", err)
			return err
		}

		// 3.5. Lead time: на сегодня слот должен начинаться не раньше now+leadTime
		if req.Date.Equal(today) {
			minStart := types.MinuteOfDayFromTime(now).Add(settings.LeadTimeMinutes)
			if req.StartMinutes < minStart {
				uc.logger.Warn("CreateBooking: slot %s violates lead time, earliest allowed %s",
					req.StartMinutes, minStart)
				return ErrTooLateToBook
			}
		}

		requested := domain.Interval{Start: req.StartMinutes, End: req.StartMinutes.Add(req.DurationMinutes)}

		// 3.6. Проверяем блокировки на дату (строки блокируются FOR UPDATE)
		blocks, err := uc.blockedSlotRepo.GetByTenantAndDate(txCtx, req.TenantID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocked slots: %v", err)
			return fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
		}
		for _, block := range blocks {
			if requested.Overlaps(block.Interval()) {
				uc.logger.Warn("CreateBooking: slot %s-%s overlaps blocked interval", requested.Start, requested.End)
				return ErrSlotNotAvailable
			}
		}

		// 3.7. Проверяем пересечение с активными бронированиями (FOR UPDATE)
		reservations, err := uc.reservationRepo.GetActiveByTenantAndDate(txCtx, req.TenantID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}
		for _, res := range reservations {
			if requested.Overlaps(res.Interval()) {
				uc.logger.Warn("CreateBooking: slot %s-%s overlaps reservation id=%d", requested.Start, requested.End, res.ID)
				return ErrSlotNotAvailable
			}
		}

		// 3.8. Создаем бронирование
		reservation := &domain.Reservation{
			TenantID:        req.TenantID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			StartMinutes:    req.StartMinutes,
			DurationMinutes: req.DurationMinutes,
			Status:          status,
			Notes:           req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			// Параллельная транзакция успела занять слот
			if errors.Is(err, resRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateBooking: slot conflict on insert: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Бронирование меняет доступность - сбрасываем кеш тенанта
	uc.cache.InvalidateTenant(ctx, req.TenantID)

	uc.logger.Info("CreateBooking: successfully created reservation id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		TenantID:        result.TenantID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartMinutes:    result.StartMinutes,
		EndMinutes:      result.EndMinutes(),
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
