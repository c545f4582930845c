package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salabelleza/SLB-BookingService/internal/config"
	"github.com/salabelleza/SLB-BookingService/internal/domain"
	"github.com/salabelleza/SLB-BookingService/internal/infra/storage/booking"
	"github.com/salabelleza/SLB-BookingService/internal/integrations/catalogservice"
	"github.com/salabelleza/SLB-BookingService/internal/integrations/identityservice"
	"github.com/salabelleza/SLB-BookingService/internal/slots"
	"github.com/salabelleza/SLB-BookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	catalogClient  CatalogClient
	identityClient IdentityClient
	txManager      TransactionManager
	cfg            config.BookingConfig
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	identityClient IdentityClient,
	txManager TransactionManager,
	cfg config.BookingConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		catalogClient:  catalogClient,
		identityClient: identityClient,
		txManager:      txManager,
		cfg:            cfg,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: serviceID=%s, date=%s, time=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что время принадлежит сетке слотов
	if err := uc.validateTimeSlot(req, now); err != nil {
		uc.logger.Warn("CreateBooking: time slot validation failed: %v", err)
		return nil, err
	}

	// 3. Для зарегистрированного пользователя проверяем его существование
	customer, err := uc.resolveCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Получаем услугу из каталога и денормализуем её данные
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service %s not found", req.ServiceID)
			return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, req.ServiceID)
		}
		uc.logger.Error("CreateBooking: failed to get service %s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	newBooking, err := domain.NewBooking(
		service.ID,
		truncateToDay(req.Date),
		req.StartTime,
		customer,
		domain.PaymentMethod(req.PaymentMethod),
		req.Comments,
		req.StaffWalkIn,
	)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to build booking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	newBooking.ServiceName = service.Name
	newBooking.ServicePrice = service.Price
	newBooking.DurationMinutes = service.DurationMinutes

	// 5. В serializable-транзакции перечитываем занятость дня под блокировкой
	// и создаём бронирование. Частичный уникальный индекс на (дата, время)
	// остаётся последней линией защиты от гонки.
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		occupied, listErr := uc.bookingRepo.ListByDate(txCtx, newBooking.Date)
		if listErr != nil {
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, listErr)
		}

		if uc.slotTaken(req.StartTime, occupied) {
			return fmt.Errorf("%w: %s at %s", ErrSlotNotAvailable,
				newBooking.Date.Format(domain.DateFormat), req.StartTime)
		}

		var createErr error
		created, createErr = uc.bookingRepo.Create(txCtx, newBooking)
		if createErr != nil {
			if errors.Is(createErr, booking.ErrSlotTaken) {
				return fmt.Errorf("%w: %s at %s", ErrSlotNotAvailable,
					newBooking.Date.Format(domain.DateFormat), req.StartTime)
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, createErr)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("CreateBooking: %v", err)
		} else {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking %s (status=%s)", created.ID, created.Status)

	return toResponse(created), nil
}

// validateTimeSlot проверяет, что время попадает в сетку слотов
// и, для сегодняшнего дня, ещё не прошло
func (uc *UseCase) validateTimeSlot(req *Request, now time.Time) error {
	interval := uc.cfg.SlotIntervalMinutes
	if req.StaffWalkIn {
		interval = uc.cfg.StaffSlotIntervalMinutes
	}

	grid, err := slots.Generate(uc.cfg.WorkingDayStartHour, uc.cfg.WorkingDayEndHour, interval)
	if err != nil {
		return fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	onGrid := false
	for _, slot := range grid {
		if slot == req.StartTime {
			onGrid = true
			break
		}
	}
	if !onGrid {
		return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, req.StartTime)
	}

	if isSameDay(req.Date, now) && !req.StartTime.IsAfter(types.NewTimeString(now)) {
		return fmt.Errorf("%w: %s", ErrTooLateToBook, req.StartTime)
	}

	return nil
}

// slotTaken проверяет, занят ли слот среди бронирований дня
// с учётом политики блокировки из конфигурации
func (uc *UseCase) slotTaken(startTime types.TimeString, occupied []*domain.Booking) bool {
	policy := slots.BlockActiveOnly
	if uc.cfg.CancelledBlocksSlot {
		policy = slots.BlockAllStatuses
	}
	free := slots.Available([]types.TimeString{startTime}, occupied, policy)
	return len(free) == 0
}

// resolveCustomer строит customer из запроса, проверяя зарегистрированного
// пользователя через identity-сервис
func (uc *UseCase) resolveCustomer(ctx context.Context, req *Request) (domain.Customer, error) {
	if req.UserID != nil {
		if _, err := uc.identityClient.CurrentIdentity(ctx, *req.UserID); err != nil {
			if errors.Is(err, identityservice.ErrIdentityNotFound) {
				uc.logger.Warn("CreateBooking: identity %s not found", *req.UserID)
				return domain.Customer{}, fmt.Errorf("%w: %s", ErrIdentityNotFound, *req.UserID)
			}
			uc.logger.Error("CreateBooking: failed to resolve identity %s: %v", *req.UserID, err)
			return domain.Customer{}, fmt.Errorf("%w: failed to resolve identity: %v", ErrInternal, err)
		}
		return domain.RegisteredCustomer(*req.UserID), nil
	}

	return domain.GuestCustomer(*req.GuestName, *req.GuestEmail, *req.GuestPhone), nil
}

// toResponse преобразует доменную модель в ответ use case
func toResponse(b *domain.Booking) *Response {
	resp := &Response{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		Date:            b.Date,
		StartTime:       b.StartTime,
		Status:          string(b.Status),
		PaymentMethod:   string(b.PaymentMethod),
		Comments:        b.Comments,
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		DurationMinutes: b.DurationMinutes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	resp.UserID = b.Customer.UserID
	if b.Customer.Guest != nil {
		resp.GuestName = &b.Customer.Guest.Name
		resp.GuestEmail = &b.Customer.Guest.Email
		resp.GuestPhone = &b.Customer.Guest.Phone
	}

	return resp
}
