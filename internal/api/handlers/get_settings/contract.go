package get_settings

import (
	"context"

	"github.com/laia-platform/LAIA-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSettings(ctx context.Context, tenantID int64) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
