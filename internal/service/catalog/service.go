package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogClient "github.com/salabelleza/SLB-BookingService/internal/integrations/catalogservice"
	"github.com/salabelleza/SLB-BookingService/internal/service/catalog/models"
)

// Service сервис каталога услуг.
// Устойчивость к сбоям каталога (ретраи, кеш с фолбэком на устаревшие
// данные) реализована в клиенте интеграции, здесь только маппинг ошибок.
type Service struct {
	catalogClient CatalogClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogClient CatalogClient, logger Logger) *Service {
	return &Service{
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// ListServices возвращает список всех услуг
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: fetching service catalog")

	services, err := s.catalogClient.ListServices(ctx)
	if err != nil {
		if errors.Is(err, catalogClient.ErrUnavailable) {
			s.logger.Error("ListServices: catalog is unavailable: %v", err)
			return nil, ErrCatalogUnavailable
		}
		s.logger.Error("ListServices: client error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - client error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// GetByID возвращает услугу по ID
func (s *Service) GetByID(ctx context.Context, serviceID string) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%s", serviceID)

	service, err := s.catalogClient.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%s not found", serviceID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, catalogClient.ErrUnavailable) {
			s.logger.Error("GetByID: catalog is unavailable: %v", err)
			return nil, ErrCatalogUnavailable
		}
		s.logger.Error("GetByID: client error for service id=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetByID - client error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched service id=%s", serviceID)
	return models.FromDomainService(service), nil
}
