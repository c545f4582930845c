package wizard

import (
	"context"
	"time"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
	"github.com/salabelleza/SLB-BookingService/internal/usecase/create_booking"
	"github.com/salabelleza/SLB-BookingService/pkg/types"
)

// CatalogProvider интерфейс каталога услуг для шага выбора услуги
type CatalogProvider interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
	GetService(ctx context.Context, serviceID string) (*domain.Service, error)
}

// AvailabilityProvider интерфейс получения свободных слотов для шага выбора времени
type AvailabilityProvider interface {
	AvailableSlots(ctx context.Context, date time.Time) ([]types.TimeString, error)
}

// Submitter интерфейс отправки собранного бронирования
type Submitter interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
