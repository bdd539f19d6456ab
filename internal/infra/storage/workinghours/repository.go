package workinghours

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/dbmetrics"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/psqlbuilder"
)

const tableName = "working_hours"

var columns = []string{
	"tenant_id",
	"weekday",
	"is_open",
	"start_minutes",
	"end_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с недельным расписанием тенантов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenantAndWeekday получает расписание тенанта на конкретный день недели (0 = воскресенье).
// Отсутствие записи — это ErrNotFound: вызывающий код трактует его как закрытый день.
func (r *Repository) GetByTenantAndWeekday(ctx context.Context, tenantID int64, weekday int) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"tenant_id": tenantID, "weekday": weekday}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.WorkingHours
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.TenantID,
		&wh.Weekday,
		&wh.IsOpen,
		&wh.StartMinutes,
		&wh.EndMinutes,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndWeekday - scan working hours: %v", ErrScanRow, err)
	}

	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return &wh, nil
}

// GetWeek получает все записи расписания тенанта, отсортированные по дню недели.
// Дни без записи в результат не попадают — их дополняет сервисный слой.
func (r *Repository) GetWeek(ctx context.Context, tenantID int64) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.WorkingHours, 0, domain.DaysPerWeek)
	for rows.Next() {
		var wh domain.WorkingHours
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&wh.TenantID,
			&wh.Weekday,
			&wh.IsOpen,
			&wh.StartMinutes,
			&wh.EndMinutes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan row: %v", ErrScanRow, err)
		}

		wh.CreatedAt = createdAt.Time
		wh.UpdatedAt = updatedAt.Time

		result = append(result, &wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Upsert создает или обновляет расписание тенанта на день недели.
// Уникальность пары (tenant_id, weekday) обеспечивается констрейнтом в миграции.
func (r *Repository) Upsert(ctx context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("tenant_id", "weekday", "is_open", "start_minutes", "end_minutes").
		Values(wh.TenantID, wh.Weekday, wh.IsOpen, wh.StartMinutes, wh.EndMinutes).
		Suffix(`ON CONFLICT (tenant_id, weekday) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			start_minutes = EXCLUDED.start_minutes,
			end_minutes = EXCLUDED.end_minutes,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return wh, nil
}
