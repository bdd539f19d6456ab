package get_blocked_dates

import (
	"context"

	getBlocked "github.com/laia-platform/LAIA-SchedulingService/internal/usecase/get_blocked_dates"
)

type GetBlockedDatesUseCase interface {
	Execute(ctx context.Context, req *getBlocked.Request) (*getBlocked.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
