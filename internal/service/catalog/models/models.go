package models

import "github.com/salabelleza/SLB-BookingService/internal/domain"

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	ShortDescription string  `json:"shortDescription"`
	Price            float64 `json:"price"`
	DurationMinutes  int     `json:"durationMinutes"`
	ImageURL         *string `json:"imageUrl,omitempty"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:               s.ID,
		Name:             s.Name,
		ShortDescription: s.ShortDescription,
		Price:            s.Price,
		DurationMinutes:  s.DurationMinutes,
		ImageURL:         s.ImageURL,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	if services == nil {
		return &ServiceListResponse{
			Services: []ServiceResponse{},
		}
	}

	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, len(services)),
	}

	for i, service := range services {
		if serviceResp := FromDomainService(service); serviceResp != nil {
			resp.Services[i] = *serviceResp
		}
	}

	return resp
}
