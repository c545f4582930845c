package create_booking

import (
	"context"
	"time"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
	"github.com/salabelleza/SLB-BookingService/internal/integrations/identityservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, serviceID string) (*domain.Service, error)
}

// IdentityClient интерфейс клиента identity-сервиса
type IdentityClient interface {
	CurrentIdentity(ctx context.Context, userID string) (*identityservice.Identity, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
