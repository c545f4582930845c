package domain

import (
	"errors"
	"time"

	"github.com/salabelleza/SLB-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

var (
	// ErrInvalidCustomer возвращается, когда customer не является корректным tagged union
	ErrInvalidCustomer = errors.New("domain: booking customer must be either registered or guest, not both and not neither")

	// ErrInvalidStatus возвращается при неизвестном статусе бронирования
	ErrInvalidStatus = errors.New("domain: invalid booking status")
)

// Guest inline contact record for a booking made without a registered account
type Guest struct {
	Name  string
	Email string
	Phone string
}

// Customer is a tagged union: either a registered user reference or an inline
// guest record. Exactly one side must be set; NewBooking rejects anything else.
type Customer struct {
	UserID *string
	Guest  *Guest
}

// RegisteredCustomer создает customer-ссылку на зарегистрированного пользователя
func RegisteredCustomer(userID string) Customer {
	return Customer{UserID: &userID}
}

// GuestCustomer создает inline-запись гостя
func GuestCustomer(name, email, phone string) Customer {
	return Customer{Guest: &Guest{Name: name, Email: email, Phone: phone}}
}

// Validate проверяет инвариант union: ровно одна из сторон задана
func (c Customer) Validate() error {
	if (c.UserID == nil) == (c.Guest == nil) {
		return ErrInvalidCustomer
	}
	if c.UserID != nil && *c.UserID == "" {
		return ErrInvalidCustomer
	}
	return nil
}

// IsRegistered returns true if the customer references a registered user
func (c Customer) IsRegistered() bool {
	return c.UserID != nil
}

// IsGuest returns true if the customer is an inline guest record
func (c Customer) IsGuest() bool {
	return c.Guest != nil
}

// DisplayName returns the name to show on calendars and lists
func (c Customer) DisplayName() string {
	if c.Guest != nil {
		return c.Guest.Name
	}
	return ""
}

// Booking represents a single requested appointment for one service slot
type Booking struct {
	ID            string
	ServiceID     string
	Date          time.Time        // Дата без времени
	StartTime     types.TimeString // Время начала, привязано к слот-сетке
	Status        BookingStatus
	Customer      Customer
	PaymentMethod PaymentMethod
	Comments      *string

	// Denormalized service data for history
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooking создает бронирование в начальном статусе, проверяя инвариант customer.
// walkIn = true используется для записей, создаваемых персоналом на месте:
// они минуют шаг подтверждения и создаются сразу в статусе confirmed.
func NewBooking(
	serviceID string,
	date time.Time,
	startTime types.TimeString,
	customer Customer,
	paymentMethod PaymentMethod,
	comments *string,
	walkIn bool,
) (*Booking, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	status := StatusPending
	if walkIn {
		status = StatusConfirmed
	}

	return &Booking{
		ServiceID:     serviceID,
		Date:          date,
		StartTime:     startTime,
		Status:        status,
		Customer:      customer,
		PaymentMethod: paymentMethod,
		Comments:      comments,
	}, nil
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if no further status transitions are possible
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return CanTransition(b.Status, StatusCancelled)
}
