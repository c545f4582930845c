package domain

import "errors"

var (
	// ErrInvalidService возвращается при некорректных данных услуги из каталога
	ErrInvalidService = errors.New("domain: invalid service data")
)

// Service represents a bookable offering. Owned by the external catalog;
// the scheduling core treats it as immutable reference data.
type Service struct {
	ID               string
	Name             string
	ShortDescription string
	Price            float64
	DurationMinutes  int
	ImageURL         *string
}

// Validate проверяет данные услуги на границе с каталогом.
// Записи из внешнего источника конвертируются и валидируются сразу при чтении,
// нетипизированные данные внутрь ядра не проходят.
func (s *Service) Validate() error {
	if s.ID == "" || s.Name == "" {
		return ErrInvalidService
	}
	if s.Price < 0 {
		return ErrInvalidService
	}
	if s.DurationMinutes <= 0 {
		return ErrInvalidService
	}
	return nil
}
