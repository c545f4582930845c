package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: service_id is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start_time: %v", ErrInvalidInput, err)
	}

	if _, err := domain.ToPaymentMethod(req.PaymentMethod); err != nil {
		return fmt.Errorf("%w: invalid payment_method %q", ErrInvalidInput, req.PaymentMethod)
	}

	if req.Comments != nil && len(*req.Comments) > domain.MaxCommentsLength {
		return fmt.Errorf("%w: comments must not exceed %d characters",
			ErrInvalidInput, domain.MaxCommentsLength)
	}

	return validateCustomer(req)
}

// validateCustomer проверяет, что заполнена ровно одна сторона customer:
// либо UserID, либо контактные данные гостя
func validateCustomer(req *Request) error {
	hasUser := req.UserID != nil && strings.TrimSpace(*req.UserID) != ""
	hasGuest := req.GuestName != nil || req.GuestEmail != nil || req.GuestPhone != nil

	if hasUser && hasGuest {
		return fmt.Errorf("%w: user_id and guest data are mutually exclusive", ErrInvalidInput)
	}
	if !hasUser && !hasGuest {
		return fmt.Errorf("%w: either user_id or guest data is required", ErrInvalidInput)
	}

	if hasGuest {
		if req.GuestName == nil || len(strings.TrimSpace(*req.GuestName)) < domain.MinGuestNameLength {
			return fmt.Errorf("%w: guest name must be at least %d characters",
				ErrInvalidInput, domain.MinGuestNameLength)
		}
		if req.GuestEmail == nil || !strings.Contains(*req.GuestEmail, "@") {
			return fmt.Errorf("%w: guest email is invalid", ErrInvalidInput)
		}
		if req.GuestPhone == nil || len(strings.TrimSpace(*req.GuestPhone)) < domain.MinGuestPhoneLength {
			return fmt.Errorf("%w: guest phone must be at least %d characters",
				ErrInvalidInput, domain.MinGuestPhoneLength)
		}
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	if truncateToDay(date).Before(truncateToDay(now)) {
		return ErrInvalidDate
	}

	if advanceBookingDays > 0 {
		maxDate := truncateToDay(now).AddDate(0, 0, advanceBookingDays)
		if truncateToDay(date).After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance",
				ErrDateTooFarInFuture, advanceBookingDays)
		}
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// truncateToDay обнуляет время, чтобы сравнивать только даты
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
