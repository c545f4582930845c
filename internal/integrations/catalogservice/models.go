package catalogservice

import (
	"fmt"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
)

// serviceDTO модель услуги в ответе каталога
type serviceDTO struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description"`
	Price            float64  `json:"price"`
	DurationMinutes  int      `json:"duration_minutes"`
	ImageURL         *string  `json:"image_url,omitempty"`
}

// toDomain конвертирует и валидирует DTO на границе.
// Невалидные записи каталога внутрь ядра не проходят.
func (d *serviceDTO) toDomain() (*domain.Service, error) {
	service := &domain.Service{
		ID:               d.ID,
		Name:             d.Name,
		ShortDescription: d.ShortDescription,
		Price:            d.Price,
		DurationMinutes:  d.DurationMinutes,
		ImageURL:         d.ImageURL,
	}

	if err := service.Validate(); err != nil {
		return nil, fmt.Errorf("%w: service id=%s: %v", ErrInvalidResponse, d.ID, err)
	}

	return service, nil
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
