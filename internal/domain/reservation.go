package domain

import (
	"time"

	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// ReservationStatus represents the status of a reservation.
// The set is closed: every boundary (HTTP, storage) must validate against it.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a booked appointment slot for a tenant.
type Reservation struct {
	ID        int64
	TenantID  int64
	ServiceID int64
	Date      types.Date
	// StartMinutes and DurationMinutes are copied from the service at booking
	// time, so later edits to the service catalogue never corrupt history.
	StartMinutes    types.MinuteOfDay
	DurationMinutes int
	Status          ReservationStatus

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndMinutes returns the exclusive end of the occupied interval
func (r *Reservation) EndMinutes() types.MinuteOfDay {
	return r.StartMinutes.Add(r.DurationMinutes)
}

// Interval returns the half-open interval [start, start+duration) occupied by the reservation
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.StartMinutes, End: r.EndMinutes()}
}

// IsActive returns true if the reservation still occupies its slot.
// Cancelled reservations release the slot immediately; completed ones keep it
// occupied for history but are in the past by definition.
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// CanBeCancelled returns true if the reservation can transition to cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal returns true if no transition leaves the current status
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusCancelled
}

// CanTransitionTo validates the reservation state machine:
// pending/confirmed -> confirmed, completed or cancelled; terminal states are final.
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	if r.IsTerminal() {
		return false
	}
	switch next {
	case StatusConfirmed:
		return r.Status == StatusPending
	case StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// ValidReservationStatus reports whether s is one of the closed enum values
func ValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// ReservationFilter фильтр для выборки бронирований тенанта
type ReservationFilter struct {
	TenantID        int64              // Обязательный параметр
	StartDate       *types.Date        // Начало периода (опционально)
	EndDate         *types.Date        // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые бронирования
}
