package create_booking

import (
	"context"
	"time"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetActiveByTenantAndDate(ctx context.Context, tenantID int64, date types.Date) ([]*domain.Reservation, error)
}

// WorkingHoursRepository интерфейс репозитория недельного расписания
type WorkingHoursRepository interface {
	GetByTenantAndWeekday(ctx context.Context, tenantID int64, weekday int) (*domain.WorkingHours, error)
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	GetByTenantAndDate(ctx context.Context, tenantID int64, date types.Date) ([]*domain.BlockedSlot, error)
}

// SettingsRepository интерфейс репозитория настроек тенанта
type SettingsRepository interface {
	GetByTenant(ctx context.Context, tenantID int64) (*domain.TenantSettings, error)
}

// CacheInvalidator интерфейс инвалидации кеша доступности
type CacheInvalidator interface {
	InvalidateTenant(ctx context.Context, tenantID int64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
