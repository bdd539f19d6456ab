package models

import (
	"errors"
	"time"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

var (
	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date")
)

// Недельное расписание

// DaySchedule расписание одного дня недели
type DaySchedule struct {
	Weekday   int     `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	IsOpen    bool    `json:"isOpen"`
	StartTime *string `json:"startTime,omitempty"` // "09:00", обязательно при isOpen
	EndTime   *string `json:"endTime,omitempty"`   // "18:00", обязательно при isOpen
}

// WeekScheduleResponse недельное расписание тенанта, всегда семь дней
type WeekScheduleResponse struct {
	TenantID int64         `json:"tenantId"`
	Days     []DaySchedule `json:"days"`
}

// UpdateWeekScheduleRequest запрос на обновление недельного расписания
type UpdateWeekScheduleRequest struct {
	TenantID int64         `json:"-"`
	Days     []DaySchedule `json:"days"`
}

// ToDomainWorkingHours конвертирует день расписания в domain модель
func (d *DaySchedule) ToDomainWorkingHours(tenantID int64) (*domain.WorkingHours, error) {
	wh := &domain.WorkingHours{
		TenantID: tenantID,
		Weekday:  d.Weekday,
		IsOpen:   d.IsOpen,
	}

	if !d.IsOpen {
		return wh, nil
	}

	if d.StartTime == nil || d.EndTime == nil {
		return nil, ErrInvalidTime
	}

	start, err := types.ParseMinuteOfDay(*d.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	end, err := types.ParseMinuteOfDay(*d.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	wh.StartMinutes = start
	wh.EndMinutes = end
	return wh, nil
}

// FromDomainWeek собирает недельное расписание, дополняя отсутствующие
// дни закрытыми
func FromDomainWeek(tenantID int64, week []*domain.WorkingHours) *WeekScheduleResponse {
	byWeekday := make(map[int]*domain.WorkingHours, len(week))
	for _, wh := range week {
		byWeekday[wh.Weekday] = wh
	}

	days := make([]DaySchedule, domain.DaysPerWeek)
	for wd := 0; wd < domain.DaysPerWeek; wd++ {
		wh, ok := byWeekday[wd]
		if !ok {
			closed := domain.ClosedDay(tenantID, wd)
			wh = &closed
		}

		day := DaySchedule{Weekday: wd, IsOpen: wh.IsOpen}
		if wh.IsOpen {
			start := wh.StartMinutes.String()
			end := wh.EndMinutes.String()
			day.StartTime = &start
			day.EndTime = &end
		}
		days[wd] = day
	}

	return &WeekScheduleResponse{TenantID: tenantID, Days: days}
}

// Блокировки

// CreateBlockedSlotRequest запрос на создание блокировки
type CreateBlockedSlotRequest struct {
	TenantID  int64   `json:"-"`
	Date      string  `json:"date"`                // "2025-10-15"
	StartTime *string `json:"startTime,omitempty"` // nil вместе с endTime = весь день
	EndTime   *string `json:"endTime,omitempty"`
	Reason    string  `json:"reason"`
}

// ToDomainBlockedSlot конвертирует запрос в domain модель
func (r *CreateBlockedSlotRequest) ToDomainBlockedSlot() (*domain.BlockedSlot, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	slot := &domain.BlockedSlot{
		TenantID: r.TenantID,
		Date:     date,
		Reason:   r.Reason,
	}

	// Обе границы либо заданы, либо отсутствуют
	if (r.StartTime == nil) != (r.EndTime == nil) {
		return nil, ErrInvalidTime
	}

	if r.StartTime != nil {
		start, err := types.ParseMinuteOfDay(*r.StartTime)
		if err != nil {
			return nil, ErrInvalidTime
		}
		end, err := types.ParseMinuteOfDay(*r.EndTime)
		if err != nil {
			return nil, ErrInvalidTime
		}
		slot.StartMinutes = &start
		slot.EndMinutes = &end
	}

	return slot, nil
}

// BlockedSlotResponse ответ с данными блокировки
type BlockedSlotResponse struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenantId"`
	Date      string    `json:"date"`
	StartTime *string   `json:"startTime,omitempty"`
	EndTime   *string   `json:"endTime,omitempty"`
	AllDay    bool      `json:"allDay"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedSlotListResponse ответ со списком блокировок
type BlockedSlotListResponse struct {
	BlockedSlots []BlockedSlotResponse `json:"blockedSlots"`
}

// FromDomainBlockedSlot конвертирует domain модель в DTO
func FromDomainBlockedSlot(b *domain.BlockedSlot) *BlockedSlotResponse {
	if b == nil {
		return nil
	}

	resp := &BlockedSlotResponse{
		ID:        b.ID,
		TenantID:  b.TenantID,
		Date:      b.Date.String(),
		AllDay:    b.IsAllDay(),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}

	if !b.IsAllDay() {
		start := b.StartMinutes.String()
		end := b.EndMinutes.String()
		resp.StartTime = &start
		resp.EndTime = &end
	}

	return resp
}

// FromDomainBlockedSlotList конвертирует список domain моделей в DTO
func FromDomainBlockedSlotList(slots []*domain.BlockedSlot) *BlockedSlotListResponse {
	resp := &BlockedSlotListResponse{
		BlockedSlots: make([]BlockedSlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		if item := FromDomainBlockedSlot(slot); item != nil {
			resp.BlockedSlots = append(resp.BlockedSlots, *item)
		}
	}

	return resp
}

// Настройки

// SettingsResponse ответ с настройками планирования тенанта
type SettingsResponse struct {
	TenantID           int64 `json:"tenantId"`
	GranularityMinutes int   `json:"granularityMinutes"`
	LeadTimeMinutes    int   `json:"leadTimeMinutes"`
	AdvanceBookingDays int   `json:"advanceBookingDays"` // 0 = без ограничения
}

// UpdateSettingsRequest запрос на обновление настроек
type UpdateSettingsRequest struct {
	TenantID           int64 `json:"-"`
	GranularityMinutes int   `json:"granularityMinutes"`
	LeadTimeMinutes    int   `json:"leadTimeMinutes"`
	AdvanceBookingDays int   `json:"advanceBookingDays"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.TenantSettings) *SettingsResponse {
	return &SettingsResponse{
		TenantID:           s.TenantID,
		GranularityMinutes: s.GranularityMinutes,
		LeadTimeMinutes:    s.LeadTimeMinutes,
		AdvanceBookingDays: s.AdvanceBookingDays,
	}
}
