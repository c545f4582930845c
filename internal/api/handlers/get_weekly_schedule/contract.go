package get_weekly_schedule

import (
	"context"

	getWeeklySchedule "github.com/salabelleza/SLB-BookingService/internal/usecase/get_weekly_schedule"
)

type GetWeeklyScheduleUseCase interface {
	Execute(ctx context.Context, req *getWeeklySchedule.Request) (*getWeeklySchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
