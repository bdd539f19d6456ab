package tenantsettings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/dbmetrics"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/psqlbuilder"
)

const tableName = "tenant_settings"

var columns = []string{
	"id",
	"tenant_id",
	"granularity_minutes",
	"lead_time_minutes",
	"advance_booking_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с настройками планирования тенантов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenant получает настройки тенанта.
// Отсутствие записи — это ErrNotFound: вызывающий код подставляет дефолты.
func (r *Repository) GetByTenant(ctx context.Context, tenantID int64) (*domain.TenantSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenant - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.TenantSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.TenantID,
		&settings.GranularityMinutes,
		&settings.LeadTimeMinutes,
		&settings.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenant - scan settings: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert создает или обновляет настройки тенанта
func (r *Repository) Upsert(ctx context.Context, settings *domain.TenantSettings) (*domain.TenantSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("tenant_id", "granularity_minutes", "lead_time_minutes", "advance_booking_days").
		Values(settings.TenantID, settings.GranularityMinutes, settings.LeadTimeMinutes, settings.AdvanceBookingDays).
		Suffix(`ON CONFLICT (tenant_id) DO UPDATE SET
			granularity_minutes = EXCLUDED.granularity_minutes,
			lead_time_minutes = EXCLUDED.lead_time_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&settings.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}
