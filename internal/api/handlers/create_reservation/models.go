package create_reservation

import (
	"fmt"
	"time"

	createBooking "github.com/laia-platform/LAIA-SchedulingService/internal/usecase/create_booking"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// CreateReservationRequest HTTP request body
type CreateReservationRequest struct {
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`      // YYYY-MM-DD
	StartTime       string  `json:"startTime"` // HH:MM
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status,omitempty"` // pending | confirmed, пусто = confirmed
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(tenantID int64) (*createBooking.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}

	start, err := types.ParseMinuteOfDay(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse start time: %w", err)
	}

	return &createBooking.Request{
		TenantID:        tenantID,
		ServiceID:       r.ServiceID,
		Date:            date,
		StartMinutes:    start,
		DurationMinutes: r.DurationMinutes,
		Status:          r.Status,
		Notes:           r.Notes,
	}, nil
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	TenantID        int64   `json:"tenantId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		TenantID:        resp.TenantID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.String(),
		StartTime:       resp.StartMinutes.String(),
		EndTime:         resp.EndMinutes.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
