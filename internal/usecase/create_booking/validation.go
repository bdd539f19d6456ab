package create_booking

import (
	"fmt"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartMinutes.Validate(); err != nil {
		return fmt.Errorf("%w: startMinutes: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.StartMinutes.Add(req.DurationMinutes) > types.MinutesPerDay {
		return fmt.Errorf("%w: reservation must end within the same day", ErrInvalidInput)
	}

	if req.Status != "" {
		if err := validateInitialStatus(req.Status); err != nil {
			return err
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateInitialStatus проверяет, что начальный статус допустим для создания
func validateInitialStatus(status string) error {
	for _, s := range domain.BookableStatuses {
		if domain.ReservationStatus(status) == s {
			return nil
		}
	}
	return fmt.Errorf("%w: status must be one of %v", ErrInvalidInput, domain.BookableStatuses)
}

// validateDate проверяет, что дата не в прошлом и не превышает горизонт бронирования
func validateDate(date, today types.Date, advanceBookingDays int) error {
	if date.Before(today) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 означает отсутствие ограничения
	if advanceBookingDays == 0 {
		return nil
	}

	if date.After(today.AddDays(advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateSlotPlacement проверяет, что слот помещается в рабочее окно
// и его начало попадает в сетку с шагом granularity от начала окна
func validateSlotPlacement(window domain.Interval, start types.MinuteOfDay, durationMinutes, granularityMinutes int) error {
	if start < window.Start || start.Add(durationMinutes) > window.End {
		return fmt.Errorf("%w: slot %s-%s is outside working hours %s-%s",
			ErrInvalidTimeSlot, start, start.Add(durationMinutes), window.Start, window.End)
	}

	if granularityMinutes > 0 && int(start-window.Start)%granularityMinutes != 0 {
		return fmt.Errorf("%w: slot start %s is not aligned to the %d-minute grid",
			ErrInvalidTimeSlot, start, granularityMinutes)
	}

	return nil
}
