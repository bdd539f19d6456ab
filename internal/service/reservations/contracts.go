package reservations

import (
	"context"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Reservation, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, tenantID, id int64, status domain.ReservationStatus) error
	Cancel(ctx context.Context, tenantID, id int64, reason string) error
}

// CacheInvalidator интерфейс инвалидации кеша доступности
type CacheInvalidator interface {
	InvalidateTenant(ctx context.Context, tenantID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
