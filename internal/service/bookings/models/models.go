package models

import (
	"errors"
	"time"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// Actor описывает, от чьего имени выполняется операция.
// Права проверяются в сервисе: клиент видит только свои бронирования,
// персонал видит и меняет любые.
type Actor struct {
	UserID string
	Staff  bool
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Actor Actor
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Actor  Actor
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	Actor  Actor
	UserID string  `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string `json:"id"`
	ServiceID     string `json:"serviceId"`
	BookingDate   string `json:"bookingDate"` // "2025-10-15"
	StartTime     string `json:"startTime"`   // "10:00"
	Status        string `json:"status"`
	PaymentMethod string `json:"paymentMethod"`

	UserID     *string `json:"userId,omitempty"`
	GuestName  *string `json:"guestName,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`

	// Денормализованные данные услуги
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	DurationMinutes int     `json:"durationMinutes"`

	Comments *string `json:"comments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.Date.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		Status:          string(b.Status),
		PaymentMethod:   string(b.PaymentMethod),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		DurationMinutes: b.DurationMinutes,
		Comments:        b.Comments,
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

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, err := domain.ToBookingStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return s, nil
}
