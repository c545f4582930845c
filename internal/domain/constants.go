package domain

import "fmt"

// PaymentMethod способ оплаты бронирования
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

// ToPaymentMethod конвертирует строку в PaymentMethod с валидацией
func ToPaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCash, PaymentTransfer:
		return m, nil
	default:
		return "", fmt.Errorf("domain: invalid payment method %q", s)
	}
}

// Default working window and slot grid configuration
const (
	DefaultWorkingDayStartHour = 9
	DefaultWorkingDayEndHour   = 19

	// Публичная сетка бронирования и мелкая сетка для персонала
	DefaultSlotIntervalMinutes = 30
	StaffSlotIntervalMinutes   = 5

	DefaultAdvanceBookingDays = 30
)

// Business validation constants
const (
	MinGuestNameLength  = 2
	MinGuestPhoneLength = 8
	MaxCommentsLength   = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
