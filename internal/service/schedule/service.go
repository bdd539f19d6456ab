package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	blockRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/blockedslot"
	settingsRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/tenantsettings"
	"github.com/laia-platform/LAIA-SchedulingService/internal/service/schedule/models"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// Service сервис для управления расписанием тенанта:
// рабочие часы, блокировки и настройки планирования
type Service struct {
	workingHoursRepo WorkingHoursRepository
	blockedSlotRepo  BlockedSlotRepository
	settingsRepo     SettingsRepository
	cache            CacheInvalidator
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	workingHoursRepo WorkingHoursRepository,
	blockedSlotRepo BlockedSlotRepository,
	settingsRepo SettingsRepository,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		workingHoursRepo: workingHoursRepo,
		blockedSlotRepo:  blockedSlotRepo,
		settingsRepo:     settingsRepo,
		cache:            cache,
		logger:           logger,
	}
}

// GetWeekSchedule возвращает недельное расписание тенанта.
// В ответе всегда семь дней: дни без записи в БД отдаются закрытыми.
func (s *Service) GetWeekSchedule(ctx context.Context, tenantID int64) (*models.WeekScheduleResponse, error) {
	s.logger.Info("GetWeekSchedule: fetching schedule for tenant=%d", tenantID)

	week, err := s.workingHoursRepo.GetWeek(ctx, tenantID)
	if err != nil {
		s.logger.Error("GetWeekSchedule: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetWeekSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(tenantID, week), nil
}

// UpdateWeekSchedule обновляет недельное расписание тенанта.
// Дни валидируются целиком до первой записи, чтобы не оставить
// расписание наполовину обновлённым из-за ошибки в одном дне.
func (s *Service) UpdateWeekSchedule(ctx context.Context, req *models.UpdateWeekScheduleRequest) (*models.WeekScheduleResponse, error) {
	s.logger.Info("UpdateWeekSchedule: updating schedule for tenant=%d, %d days", req.TenantID, len(req.Days))

	if len(req.Days) == 0 {
		return nil, fmt.Errorf("%w: days are required", ErrInvalidInput)
	}

	updates := make([]*domain.WorkingHours, 0, len(req.Days))
	seen := make(map[int]bool, len(req.Days))

	for _, day := range req.Days {
		if day.Weekday < domain.MinWeekday || day.Weekday > domain.MaxWeekday {
			return nil, fmt.Errorf("%w: weekday must be between %d and %d",
				ErrInvalidInput, domain.MinWeekday, domain.MaxWeekday)
		}
		if seen[day.Weekday] {
			return nil, fmt.Errorf("%w: duplicate weekday %d", ErrInvalidInput, day.Weekday)
		}
		seen[day.Weekday] = true

		wh, err := day.ToDomainWorkingHours(req.TenantID)
		if err != nil {
			s.logger.Warn("UpdateWeekSchedule: invalid day %d for tenant=%d: %v", day.Weekday, req.TenantID, err)
			return nil, fmt.Errorf("%w: weekday %d: %v", ErrInvalidInput, day.Weekday, err)
		}

		if wh.IsOpen {
			if err := validateWindow(wh.StartMinutes, wh.EndMinutes); err != nil {
				return nil, fmt.Errorf("%w: weekday %d: %v", ErrInvalidInput, day.Weekday, err)
			}
		}

		updates = append(updates, wh)
	}

	for _, wh := range updates {
		if _, err := s.workingHoursRepo.Upsert(ctx, wh); err != nil {
			s.logger.Error("UpdateWeekSchedule: upsert failed for tenant=%d weekday=%d: %v",
				req.TenantID, wh.Weekday, err)
			return nil, fmt.Errorf("%w: UpdateWeekSchedule - repository error: %v", ErrInternal, err)
		}
	}

	// Рабочие часы меняют доступность - сбрасываем кеш
	s.cache.InvalidateTenant(ctx, req.TenantID)

	s.logger.Info("UpdateWeekSchedule: successfully updated schedule for tenant=%d", req.TenantID)
	return s.GetWeekSchedule(ctx, req.TenantID)
}

// ListBlockedSlots возвращает блокировки тенанта за период
func (s *Service) ListBlockedSlots(ctx context.Context, tenantID int64, startDate, endDate string) (*models.BlockedSlotListResponse, error) {
	s.logger.Info("ListBlockedSlots: tenant=%d, period=%s to %s", tenantID, startDate, endDate)

	start, err := types.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate", ErrInvalidInput)
	}
	end, err := types.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endDate", ErrInvalidInput)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	slots, err := s.blockedSlotRepo.ListByTenantAndPeriod(ctx, tenantID, start, end)
	if err != nil {
		s.logger.Error("ListBlockedSlots: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListBlockedSlots - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedSlotList(slots), nil
}

// CreateBlockedSlot создает блокировку: весь день или диапазон внутри дня
func (s *Service) CreateBlockedSlot(ctx context.Context, req *models.CreateBlockedSlotRequest) (*models.BlockedSlotResponse, error) {
	s.logger.Info("CreateBlockedSlot: tenant=%d, date=%s", req.TenantID, req.Date)

	slot, err := req.ToDomainBlockedSlot()
	if err != nil {
		s.logger.Warn("CreateBlockedSlot: invalid request for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if len(slot.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	if !slot.IsAllDay() {
		if err := validateWindow(*slot.StartMinutes, *slot.EndMinutes); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	created, err := s.blockedSlotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("CreateBlockedSlot: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: CreateBlockedSlot - repository error: %v", ErrInternal, err)
	}

	// Блокировка меняет доступность - сбрасываем кеш
	s.cache.InvalidateTenant(ctx, req.TenantID)

	s.logger.Info("CreateBlockedSlot: created blocked slot id=%d for tenant=%d", created.ID, req.TenantID)
	return models.FromDomainBlockedSlot(created), nil
}

// DeleteBlockedSlot удаляет блокировку тенанта
func (s *Service) DeleteBlockedSlot(ctx context.Context, tenantID, id int64) error {
	s.logger.Info("DeleteBlockedSlot: tenant=%d, id=%d", tenantID, id)

	if err := s.blockedSlotRepo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, blockRepo.ErrNotFound) {
			s.logger.Warn("DeleteBlockedSlot: blocked slot id=%d not found for tenant=%d", id, tenantID)
			return ErrBlockedSlotNotFound
		}
		s.logger.Error("DeleteBlockedSlot: repository error for tenant=%d: %v", tenantID, err)
		return fmt.Errorf("%w: DeleteBlockedSlot - repository error: %v", ErrInternal, err)
	}

	// Снятие блокировки меняет доступность - сбрасываем кеш
	s.cache.InvalidateTenant(ctx, tenantID)

	s.logger.Info("DeleteBlockedSlot: deleted blocked slot id=%d for tenant=%d", id, tenantID)
	return nil
}

// GetSettings возвращает настройки планирования тенанта.
// Если тенант не настраивал их, отдаются дефолты.
func (s *Service) GetSettings(ctx context.Context, tenantID int64) (*models.SettingsResponse, error) {
	s.logger.Info("GetSettings: fetching settings for tenant=%d", tenantID)

	settings, err := s.settingsRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrNotFound) {
			return models.FromDomainSettings(domain.DefaultTenantSettings(tenantID)), nil
		}
		s.logger.Error("GetSettings: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// UpdateSettings обновляет настройки планирования тенанта
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: tenant=%d, granularity=%d, leadTime=%d, advanceDays=%d",
		req.TenantID, req.GranularityMinutes, req.LeadTimeMinutes, req.AdvanceBookingDays)

	if err := validateSettings(req); err != nil {
		s.logger.Warn("UpdateSettings: validation failed for tenant=%d: %v", req.TenantID, err)
		return nil, err
	}

	settings := &domain.TenantSettings{
		TenantID:           req.TenantID,
		GranularityMinutes: req.GranularityMinutes,
		LeadTimeMinutes:    req.LeadTimeMinutes,
		AdvanceBookingDays: req.AdvanceBookingDays,
	}

	updated, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("UpdateSettings: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	// Гранулярность и ограничения влияют на генерацию слотов - сбрасываем кеш
	s.cache.InvalidateTenant(ctx, req.TenantID)

	s.logger.Info("UpdateSettings: successfully updated settings for tenant=%d", req.TenantID)
	return models.FromDomainSettings(updated), nil
}

// validateWindow проверяет, что интервал внутри дня корректен
func validateWindow(start, end types.MinuteOfDay) error {
	if err := start.Validate(); err != nil {
		return err
	}
	if err := end.Validate(); err != nil {
		return err
	}
	if end <= start {
		return fmt.Errorf("end time must be after start time")
	}
	return nil
}

func validateSettings(req *models.UpdateSettingsRequest) error {
	if req.GranularityMinutes < domain.MinGranularityMinutes || req.GranularityMinutes > domain.MaxGranularityMinutes {
		return fmt.Errorf("%w: granularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinGranularityMinutes, domain.MaxGranularityMinutes)
	}
	if req.LeadTimeMinutes < domain.MinLeadTimeMinutes || req.LeadTimeMinutes > domain.MaxLeadTimeMinutes {
		return fmt.Errorf("%w: leadTimeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinLeadTimeMinutes, domain.MaxLeadTimeMinutes)
	}
	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays || req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	return nil
}
