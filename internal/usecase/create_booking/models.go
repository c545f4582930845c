package create_booking

import (
	"time"

	"github.com/salabelleza/SLB-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования.
// Ровно одна сторона customer должна быть заполнена:
// либо UserID зарегистрированного пользователя, либо контактные данные гостя.
type Request struct {
	ServiceID     string
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала слота (например, "10:00")
	PaymentMethod string           // "cash" или "transfer"
	Comments      *string          // Дополнительные пожелания (опционально)

	UserID     *string // ID зарегистрированного пользователя
	GuestName  *string // Имя гостя
	GuestEmail *string // Email гостя
	GuestPhone *string // Телефон гостя

	// StaffWalkIn true для записей, которые персонал оформляет на месте:
	// такие бронирования создаются сразу в статусе confirmed
	StaffWalkIn bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            string
	ServiceID     string
	Date          time.Time
	StartTime     types.TimeString
	Status        string
	PaymentMethod string
	Comments      *string

	UserID     *string
	GuestName  *string
	GuestEmail *string
	GuestPhone *string

	// Денормализованные данные услуги
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}
