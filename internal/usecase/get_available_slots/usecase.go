package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	settingsRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/tenantsettings"
	whRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/workinghours"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	workingHoursRepo WorkingHoursRepository
	blockedSlotRepo  BlockedSlotRepository
	reservationRepo  ReservationRepository
	settingsRepo     SettingsRepository
	cache            AvailabilityCache
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	workingHoursRepo WorkingHoursRepository,
	blockedSlotRepo BlockedSlotRepository,
	reservationRepo ReservationRepository,
	settingsRepo SettingsRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		workingHoursRepo: workingHoursRepo,
		blockedSlotRepo:  blockedSlotRepo,
		reservationRepo:  reservationRepo,
		settingsRepo:     settingsRepo,
		cache:            cache,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%d, service=%d, date=%s, duration=%d",
		req.TenantID, req.ServiceID, req.Date, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	today := types.DateOf(now)

	// 3. Дата в прошлом - пустой список, не ошибка
	if req.Date.Before(today) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past, returning empty", req.Date)
		return uc.emptyResponse(req), nil
	}

	// 4. Проверяем кеш
	if starts, ok := uc.cache.Get(ctx, req.TenantID, req.Date, req.DurationMinutes); ok {
		uc.logger.Info("GetAvailableSlots: cache hit for tenant=%d, date=%s, %d slots",
			req.TenantID, req.Date, len(starts))
		return uc.buildResponse(req, starts), nil
	}

	// 5. Получаем настройки тенанта (дефолты, если не настроены)
	settings, err := uc.settingsRepo.GetByTenant(ctx, req.TenantID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get settings for tenant=%d: %v", req.TenantID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultTenantSettings(req.TenantID)
	}

	// 6. Проверяем горизонт бронирования
	if err := validateAdvanceLimit(req.Date, today, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Получаем рабочие часы на день недели.
	// Отсутствие записи трактуем как закрытый день - пустой список
	workingHours, err := uc.workingHoursRepo.GetByTenantAndWeekday(ctx, req.TenantID, req.Date.Weekday())
	if err != nil {
		if errors.Is(err, whRepo.ErrNotFound) {
			uc.logger.Info("GetAvailableSlots: tenant=%d has no schedule for weekday=%d, treating as closed",
				req.TenantID, req.Date.Weekday())
			return uc.emptyResponse(req), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	if !workingHours.IsOpen {
		uc.logger.Info("GetAvailableSlots: tenant=%d is closed on %s", req.TenantID, req.Date)
		return uc.emptyResponse(req), nil
	}

	// 8. Получаем блокировки на дату
	blocks, err := uc.blockedSlotRepo.GetByTenantAndDate(ctx, req.TenantID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	// 9. Получаем активные бронирования на дату
	reservations, err := uc.reservationRepo.GetActiveByTenantAndDate(ctx, req.TenantID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 10. Порог начала слота: на сегодня учитываем текущее время и lead time
	var minStart types.MinuteOfDay
	if req.Date.Equal(today) {
		minStart = types.MinuteOfDayFromTime(now).Add(settings.LeadTimeMinutes)
	}

	// 11. Генерируем слоты
	busy := collectBusyIntervals(reservations, blocks)
	starts := generateSlots(
		workingHours.Window(),
		settings.GranularityMinutes,
		req.DurationMinutes,
		busy,
		minStart,
	)

	// 12. Кладем результат в кеш
	uc.cache.Set(ctx, req.TenantID, req.Date, req.DurationMinutes, starts)

	uc.logger.Info("GetAvailableSlots: generated %d slots for tenant=%d, date=%s, duration=%d",
		len(starts), req.TenantID, req.Date, req.DurationMinutes)

	return uc.buildResponse(req, starts), nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return uc.buildResponse(req, nil)
}

func (uc *UseCase) buildResponse(req *Request, starts []types.MinuteOfDay) *Response {
	return &Response{
		TenantID:        req.TenantID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Slots:           buildSlots(starts, req.DurationMinutes),
	}
}
