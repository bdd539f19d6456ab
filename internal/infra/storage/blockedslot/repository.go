package blockedslot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/dbmetrics"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/psqlbuilder"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

const tableName = "blocked_slots"

var columns = []string{
	"id",
	"tenant_id",
	"blocked_date",
	"start_minutes",
	"end_minutes",
	"reason",
	"created_at",
}

// Repository репозиторий для работы с блокировками расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenantAndDate получает все блокировки тенанта на конкретную дату.
// Если вызов идёт внутри транзакции, строки блокируются через FOR UPDATE —
// это часть защиты от гонки при создании бронирования.
func (r *Repository) GetByTenantAndDate(ctx context.Context, tenantID int64, date types.Date) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"tenant_id": tenantID, "blocked_date": date}).
		OrderBy("start_minutes ASC NULLS FIRST")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlockedSlots(rows, "GetByTenantAndDate")
}

// ListByTenantAndPeriod получает блокировки тенанта за период [startDate, endDate]
func (r *Repository) ListByTenantAndPeriod(ctx context.Context, tenantID int64, startDate, endDate types.Date) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.GtOrEq{"blocked_date": startDate}).
		Where(squirrel.LtOrEq{"blocked_date": endDate}).
		OrderBy("blocked_date ASC, start_minutes ASC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenantAndPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenantAndPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlockedSlots(rows, "ListByTenantAndPeriod")
}

// Create создает новую блокировку
func (r *Repository) Create(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("tenant_id", "blocked_date", "start_minutes", "end_minutes", "reason").
		Values(slot.TenantID, slot.Date, slot.StartMinutes, slot.EndMinutes, slot.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time

	return slot, nil
}

// Delete удаляет блокировку тенанта.
// Фильтр по tenant_id не даёт удалить чужую блокировку по известному ID.
func (r *Repository) Delete(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// scanBlockedSlots сканирует результаты запроса в слайс блокировок
func (r *Repository) scanBlockedSlots(rows *sql.Rows, op string) ([]*domain.BlockedSlot, error) {
	slots := make([]*domain.BlockedSlot, 0)

	for rows.Next() {
		var slot domain.BlockedSlot
		var createdAt sql.NullTime
		var startMinutes, endMinutes sql.NullInt64

		err := rows.Scan(
			&slot.ID,
			&slot.TenantID,
			&slot.Date,
			&startMinutes,
			&endMinutes,
			&slot.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		if startMinutes.Valid {
			m := types.MinuteOfDay(startMinutes.Int64)
			slot.StartMinutes = &m
		}
		if endMinutes.Valid {
			m := types.MinuteOfDay(endMinutes.Int64)
			slot.EndMinutes = &m
		}
		slot.CreatedAt = createdAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return slots, nil
}
