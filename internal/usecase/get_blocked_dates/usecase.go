package get_blocked_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	settingsRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/tenantsettings"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// UseCase use case для получения полностью недоступных дат месяца.
// Используется календарём записи: клиенту сразу показываются дни,
// на которые нет смысла заходить за слотами.
type UseCase struct {
	workingHoursRepo WorkingHoursRepository
	blockedSlotRepo  BlockedSlotRepository
	reservationRepo  ReservationRepository
	settingsRepo     SettingsRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	workingHoursRepo WorkingHoursRepository,
	blockedSlotRepo BlockedSlotRepository,
	reservationRepo ReservationRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		workingHoursRepo: workingHoursRepo,
		blockedSlotRepo:  blockedSlotRepo,
		reservationRepo:  reservationRepo,
		settingsRepo:     settingsRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case: перебирает дни месяца и собирает даты,
// на которые нет ни одного доступного слота репрезентативной длительности.
// Данные месяца загружаются тремя запросами, день считается в памяти.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBlockedDates: tenant=%d, month=%04d-%02d, duration=%d",
		req.TenantID, req.Year, req.Month, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetBlockedDates: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	today := types.DateOf(now)

	// 2. Настройки тенанта (дефолты, если не настроены)
	settings, err := uc.settingsRepo.GetByTenant(ctx, req.TenantID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrNotFound) {
			uc.logger.Error("GetBlockedDates: failed to get settings for tenant=%d: %v", req.TenantID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultTenantSettings(req.TenantID)
	}

	// Репрезентативная длительность по умолчанию - одна ячейка сетки
	duration := req.DurationMinutes
	if duration == 0 {
		duration = settings.GranularityMinutes
	}

	firstDay := types.NewDate(req.Year, time.Month(req.Month), 1)
	lastDay := types.NewDate(req.Year, time.Month(req.Month), firstDay.DaysInMonth())

	// 3. Недельное расписание одним запросом
	week, err := uc.workingHoursRepo.GetWeek(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("GetBlockedDates: failed to get week schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get week schedule: %v", ErrInternal, err)
	}
	schedule := make(map[int]*domain.WorkingHours, len(week))
	for _, wh := range week {
		schedule[wh.Weekday] = wh
	}

	// 4. Блокировки месяца одним запросом
	blocks, err := uc.blockedSlotRepo.ListByTenantAndPeriod(ctx, req.TenantID, firstDay, lastDay)
	if err != nil {
		uc.logger.Error("GetBlockedDates: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}
	blocksByDate := make(map[types.Date][]*domain.BlockedSlot)
	for _, b := range blocks {
		blocksByDate[b.Date] = append(blocksByDate[b.Date], b)
	}

	// 5. Активные бронирования месяца одним запросом
	reservations, err := uc.reservationRepo.GetByTenantWithFilter(ctx, domain.ReservationFilter{
		TenantID:  req.TenantID,
		StartDate: &firstDay,
		EndDate:   &lastDay,
	})
	if err != nil {
		uc.logger.Error("GetBlockedDates: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}
	reservationsByDate := make(map[types.Date][]*domain.Reservation)
	for _, r := range reservations {
		reservationsByDate[r.Date] = append(reservationsByDate[r.Date], r)
	}

	// 6. Перебираем дни месяца
	blockedDates := make([]types.Date, 0)
	for day := 1; day <= firstDay.DaysInMonth(); day++ {
		date := types.NewDate(req.Year, time.Month(req.Month), day)

		if uc.isDateBlocked(date, today, now, settings, duration, schedule, blocksByDate[date], reservationsByDate[date]) {
			blockedDates = append(blockedDates, date)
		}
	}

	uc.logger.Info("GetBlockedDates: tenant=%d, month=%04d-%02d: %d blocked dates",
		req.TenantID, req.Year, req.Month, len(blockedDates))

	return &Response{
		TenantID:     req.TenantID,
		Year:         req.Year,
		Month:        req.Month,
		BlockedDates: blockedDates,
	}, nil
}

// isDateBlocked решает, есть ли на дату хотя бы один доступный слот
func (uc *UseCase) isDateBlocked(
	date, today types.Date,
	now time.Time,
	settings *domain.TenantSettings,
	duration int,
	schedule map[int]*domain.WorkingHours,
	blocks []*domain.BlockedSlot,
	reservations []*domain.Reservation,
) bool {
	// Прошедшие даты в календаре недоступны
	if date.Before(today) {
		return true
	}

	// Даты за горизонтом бронирования недоступны
	if settings.HasAdvanceBookingLimit() && date.After(today.AddDays(settings.AdvanceBookingDays)) {
		return true
	}

	// Закрытый день недели (нет записи или is_open = false)
	wh, ok := schedule[date.Weekday()]
	if !ok || !wh.IsOpen {
		return true
	}

	// Занятые интервалы дня
	intervals := make([]domain.Interval, 0, len(reservations)+len(blocks))
	for _, r := range reservations {
		if r.IsActive() {
			intervals = append(intervals, r.Interval())
		}
	}
	for _, b := range blocks {
		intervals = append(intervals, b.Interval())
	}
	busy := domain.MergeIntervals(intervals)

	// Порог начала слота на сегодня
	var minStart types.MinuteOfDay
	if date.Equal(today) {
		minStart = types.MinuteOfDayFromTime(now).Add(settings.LeadTimeMinutes)
	}

	return !hasAvailableSlot(wh.Window(), settings.GranularityMinutes, duration, busy, minStart)
}

// hasAvailableSlot проверяет наличие хотя бы одного свободного слота.
// Семантика идентична генератору слотов: кандидаты с шагом granularity,
// пересечения по полуоткрытым интервалам.
func hasAvailableSlot(
	window domain.Interval,
	granularityMinutes int,
	durationMinutes int,
	busy []domain.Interval,
	minStart types.MinuteOfDay,
) bool {
	if window.IsEmpty() || granularityMinutes <= 0 || durationMinutes <= 0 {
		return false
	}

	for start := window.Start; start.Add(durationMinutes) <= window.End; start = start.Add(granularityMinutes) {
		if start < minStart {
			continue
		}

		candidate := domain.Interval{Start: start, End: start.Add(durationMinutes)}

		free := true
		for _, iv := range busy {
			if candidate.Overlaps(iv) {
				free = false
				break
			}
		}
		if free {
			return true
		}
	}

	return false
}

func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.Month < 1 || req.Month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}

	if req.Year < 2000 || req.Year > 2100 {
		return fmt.Errorf("%w: year is out of range", ErrInvalidInput)
	}

	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	return nil
}
