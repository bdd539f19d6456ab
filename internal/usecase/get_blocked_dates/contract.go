package get_blocked_dates

import (
	"context"
	"time"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// WorkingHoursRepository интерфейс репозитория недельного расписания
type WorkingHoursRepository interface {
	GetWeek(ctx context.Context, tenantID int64) ([]*domain.WorkingHours, error)
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	ListByTenantAndPeriod(ctx context.Context, tenantID int64, startDate, endDate types.Date) ([]*domain.BlockedSlot, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByTenantWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// SettingsRepository интерфейс репозитория настроек тенанта
type SettingsRepository interface {
	GetByTenant(ctx context.Context, tenantID int64) (*domain.TenantSettings, error)
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
