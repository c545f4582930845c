package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition возвращается при недопустимом переходе статуса.
	// Это нарушение контракта вызывающей стороны, а не пользовательская ошибка.
	ErrInvalidTransition = errors.New("domain: invalid booking status transition")
)

// allowedTransitions таблица допустимых переходов статусов.
// cancelled и completed терминальные: из них переходов нет.
// Удаление бронирования не является переходом и разрешено из любого статуса.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCancelled: {},
	StatusCompleted: {},
}

// CanTransition возвращает true, если переход from -> to допустим
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions возвращает список статусов, достижимых из from
func AllowedTransitions(from BookingStatus) []BookingStatus {
	targets := allowedTransitions[from]
	result := make([]BookingStatus, len(targets))
	copy(result, targets)
	return result
}

// ApplyTransition возвращает копию бронирования с новым статусом.
// Исходное бронирование не мутируется. Недопустимый переход
// (включая переход в тот же статус) возвращает ErrInvalidTransition.
func ApplyTransition(booking *Booking, target BookingStatus) (*Booking, error) {
	if err := ValidateStatus(target); err != nil {
		return nil, err
	}

	if !CanTransition(booking.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
	}

	updated := *booking
	updated.Status = target
	return &updated, nil
}

// ValidateStatus проверяет, что статус является одним из известных
func ValidateStatus(status BookingStatus) error {
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
}

// ToBookingStatus конвертирует строку в BookingStatus с валидацией
func ToBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if err := ValidateStatus(status); err != nil {
		return "", err
	}
	return status, nil
}
