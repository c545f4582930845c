package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
	createBooking "github.com/salabelleza/SLB-BookingService/internal/usecase/create_booking"
	"github.com/salabelleza/SLB-BookingService/pkg/types"
)

var (
	// errInvalidDateFormat возвращается при некорректном формате даты в теле запроса
	errInvalidDateFormat = errors.New("invalid booking date format")

	// errInvalidTimeFormat возвращается при некорректном формате времени в теле запроса
	errInvalidTimeFormat = errors.New("invalid start time format")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID     string  `json:"serviceId"`
	BookingDate   string  `json:"bookingDate"` // "2025-10-15"
	StartTime     string  `json:"startTime"`   // "10:00"
	PaymentMethod string  `json:"paymentMethod"`
	Comments      *string `json:"comments,omitempty"`

	GuestName  *string `json:"guestName,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`

	StaffWalkIn bool `json:"staffWalkIn,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            string  `json:"id"`
	ServiceID     string  `json:"serviceId"`
	BookingDate   string  `json:"bookingDate"`
	StartTime     string  `json:"startTime"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	Comments      *string `json:"comments,omitempty"`

	UserID     *string `json:"userId,omitempty"`
	GuestName  *string `json:"guestName,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`

	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	DurationMinutes int     `json:"durationMinutes"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// userID берётся из контекста аутентификации, не из тела запроса.
func (r *CreateBookingRequest) ToUseCaseRequest(userID *string) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", errInvalidDateFormat, r.BookingDate)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", errInvalidTimeFormat, r.StartTime)
	}

	return &createBooking.Request{
		ServiceID:     r.ServiceID,
		Date:          bookingDate,
		StartTime:     startTime,
		PaymentMethod: r.PaymentMethod,
		Comments:      r.Comments,
		UserID:        userID,
		GuestName:     r.GuestName,
		GuestEmail:    r.GuestEmail,
		GuestPhone:    r.GuestPhone,
		StaffWalkIn:   r.StaffWalkIn,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		Status:          resp.Status,
		PaymentMethod:   resp.PaymentMethod,
		Comments:        resp.Comments,
		UserID:          resp.UserID,
		GuestName:       resp.GuestName,
		GuestEmail:      resp.GuestEmail,
		GuestPhone:      resp.GuestPhone,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		DurationMinutes: resp.DurationMinutes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
