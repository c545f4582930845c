package catalog

import (
	"context"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
)

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
	GetService(ctx context.Context, serviceID string) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
