package list_blocked_slots

import (
	"context"

	"github.com/laia-platform/LAIA-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListBlockedSlots(ctx context.Context, tenantID int64, startDate, endDate string) (*models.BlockedSlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
