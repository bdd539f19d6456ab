package schedule

import (
	"context"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// WorkingHoursRepository интерфейс репозитория недельного расписания
type WorkingHoursRepository interface {
	GetWeek(ctx context.Context, tenantID int64) ([]*domain.WorkingHours, error)
	Upsert(ctx context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error)
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	ListByTenantAndPeriod(ctx context.Context, tenantID int64, startDate, endDate types.Date) ([]*domain.BlockedSlot, error)
	Create(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error)
	Delete(ctx context.Context, tenantID, id int64) error
}

// SettingsRepository интерфейс репозитория настроек тенанта
type SettingsRepository interface {
	GetByTenant(ctx context.Context, tenantID int64) (*domain.TenantSettings, error)
	Upsert(ctx context.Context, settings *domain.TenantSettings) (*domain.TenantSettings, error)
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
