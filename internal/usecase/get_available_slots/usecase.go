package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/salabelleza/SLB-BookingService/internal/config"
	"github.com/salabelleza/SLB-BookingService/internal/domain"
	"github.com/salabelleza/SLB-BookingService/internal/slots"
	"github.com/salabelleza/SLB-BookingService/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	cfg          config.BookingConfig
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, cfg config.BookingConfig, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, staffGrid=%t",
		req.Date.Format(domain.DateFormat), req.StaffGrid)

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 2. Генерируем сетку слотов рабочего дня
	interval := uc.cfg.SlotIntervalMinutes
	if req.StaffGrid {
		interval = uc.cfg.StaffSlotIntervalMinutes
	}

	grid, err := slots.Generate(uc.cfg.WorkingDayStartHour, uc.cfg.WorkingDayEndHour, interval)
	if err != nil {
		// Конфигурация валидируется при загрузке, сюда попадать не должны
		uc.logger.Error("GetAvailableSlots: failed to generate slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	// 3. Если запрошен сегодняшний день — убираем уже прошедшие слоты
	if isSameDay(req.Date, now) {
		grid = dropPastSlots(grid, types.NewTimeString(now))
	}

	// 4. Получаем бронирования на дату и фильтруем занятые слоты
	bookings, err := uc.bookingRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	available := slots.Available(grid, bookings, uc.blockingPolicy())

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for date=%s",
		len(available), len(grid), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		IntervalMinutes: interval,
		Slots:           available,
	}, nil
}

// blockingPolicy возвращает политику блокировки слотов из конфигурации
func (uc *UseCase) blockingPolicy() slots.BlockingPolicy {
	if uc.cfg.CancelledBlocksSlot {
		return slots.BlockAllStatuses
	}
	return slots.BlockActiveOnly
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	if advanceBookingDays > 0 {
		maxDate := truncateToDay(now).AddDate(0, 0, advanceBookingDays)
		if truncateToDay(date).After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
		}
	}

	return nil
}

// dropPastSlots убирает из сетки слоты, которые начинаются не позже cutoff
func dropPastSlots(grid []types.TimeString, cutoff types.TimeString) []types.TimeString {
	future := make([]types.TimeString, 0, len(grid))
	for _, slot := range grid {
		if slot.IsAfter(cutoff) {
			future = append(future, slot)
		}
	}
	return future
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return truncateToDay(date).Before(truncateToDay(now))
}

// truncateToDay обнуляет время, чтобы сравнивать только даты
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
