package get_reservation

import (
	"context"

	"github.com/laia-platform/LAIA-SchedulingService/internal/service/reservations/models"
)

type ReservationsService interface {
	GetByID(ctx context.Context, tenantID, id int64) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
