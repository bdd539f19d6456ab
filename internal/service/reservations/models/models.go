package models

import (
	"errors"
	"time"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	TenantID int64  `json:"-"`
	Reason   string `json:"reason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	TenantID int64  `json:"-"`
	Status   string `json:"status"`
}

// GetTenantReservationsRequest запрос на получение бронирований тенанта
type GetTenantReservationsRequest struct {
	TenantID        int64
	StartDate       *string // "2006-01-02", опционально
	EndDate         *string // "2006-01-02", опционально
	Status          *string // Фильтр по статусу, опционально
	IncludeInactive bool    // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTenantReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		TenantID:        r.TenantID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.StartDate != nil {
		date, err := types.ParseDate(*r.StartDate)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.StartDate = &date
	}

	if r.EndDate != nil {
		date, err := types.ParseDate(*r.EndDate)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.EndDate = &date
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64  `json:"id"`
	TenantID        int64  `json:"tenantId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`   // "11:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		TenantID:           r.TenantID,
		ServiceID:          r.ServiceID,
		Date:               r.Date.String(),
		StartTime:          r.StartMinutes.String(),
		EndTime:            r.EndMinutes().String(),
		DurationMinutes:    r.DurationMinutes,
		Status:             string(r.Status),
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !domain.ValidReservationStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
