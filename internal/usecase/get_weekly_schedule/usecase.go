package get_weekly_schedule

import (
	"context"
	"fmt"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
)

// UseCase use case для получения недельного расписания персонала
type UseCase struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения недельного расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	// 1. Определяем окно недели: нулевой pivot означает текущую неделю
	pivot := req.Pivot
	if pivot.IsZero() {
		pivot = uc.timeProvider.Now()
	}
	window := domain.WeekOf(pivot)

	uc.logger.Info("GetWeeklySchedule: week %s - %s",
		window.Start.Format(domain.DateFormat), window.End.Format(domain.DateFormat))

	// 2. Получаем все бронирования недели одним запросом
	bookings, err := uc.bookingRepo.ListByDateRange(ctx, window.Start, window.End)
	if err != nil {
		uc.logger.Error("GetWeeklySchedule: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 3. Раскладываем по ячейкам (день, час)
	schedule := domain.AggregateWeekly(bookings, window, domain.DefaultHourRange())

	uc.logger.Info("GetWeeklySchedule: %d bookings in week %s",
		len(bookings), window.Start.Format(domain.DateFormat))

	return &Response{
		WeekStart: window.Start,
		WeekEnd:   window.End,
		Schedule:  schedule,
		IsEmpty:   schedule.IsEmpty(),
	}, nil
}
