package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
	bookingRepo "github.com/salabelleza/SLB-BookingService/internal/infra/storage/booking"
	"github.com/salabelleza/SLB-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент может видеть только своё бронирование, персонал видит любые.
func (s *Service) GetByID(ctx context.Context, id string, actor models.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, actor.UserID)

	booking, err := s.fetchBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReadAccess(booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", actor.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя.
// Опционально фильтрует по статусу. Клиент может запрашивать только свою историю.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	if !req.Actor.Staff && req.Actor.UserID != req.UserID {
		s.logger.Warn("GetUserBookings: access denied for user=%s to history of user=%s",
			req.Actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus обновляет статус бронирования через машину состояний.
// Доступно только персоналу. Переходы ограничены:
// pending -> confirmed/cancelled, confirmed -> completed/cancelled,
// cancelled и completed терминальны.
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by user=%s",
		bookingID, req.Status, req.Actor.UserID)

	if !req.Actor.Staff {
		s.logger.Warn("UpdateStatus: access denied for user=%s", req.Actor.UserID)
		return ErrAccessDenied
	}

	booking, err := s.fetchBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	// Проверяем допустимость перехода
	if _, err := domain.ApplyTransition(booking, newStatus); err != nil {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%s",
			booking.Status, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", bookingID, newStatus)
	return nil
}

// Cancel отменяет бронирование.
// Клиент может отменить только своё бронирование, персонал любое.
// Отмена это обычный переход статуса, поэтому терминальные бронирования
// отменить нельзя.
func (s *Service) Cancel(ctx context.Context, bookingID string, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, req.Actor.UserID)

	booking, err := s.fetchBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if !req.Actor.Staff && !s.ownsBooking(booking, req.Actor.UserID) {
		s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%s",
			req.Actor.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return nil
}

// Delete удаляет бронирование из хранилища.
// Удаление доступно только персоналу и не зависит от статуса:
// удалить можно и активное, и завершённое бронирование.
func (s *Service) Delete(ctx context.Context, bookingID string, actor models.Actor) error {
	s.logger.Info("Delete: deleting booking id=%s by user=%s", bookingID, actor.UserID)

	if !actor.Staff {
		s.logger.Warn("Delete: access denied for user=%s", actor.UserID)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%s", bookingID)
	return nil
}

// Вспомогательные методы

// fetchBooking получает бронирование с единообразной обработкой ошибок
func (s *Service) fetchBooking(ctx context.Context, op string, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkReadAccess проверяет доступ на чтение бронирования
func (s *Service) checkReadAccess(booking *domain.Booking, actor models.Actor) error {
	if actor.Staff {
		return nil
	}
	if s.ownsBooking(booking, actor.UserID) {
		return nil
	}
	return ErrAccessDenied
}

// ownsBooking проверяет, что бронирование принадлежит пользователю.
// Гостевые бронирования не привязаны к аккаунту и через API клиента недоступны.
func (s *Service) ownsBooking(booking *domain.Booking, userID string) bool {
	return booking.Customer.UserID != nil && *booking.Customer.UserID == userID
}
