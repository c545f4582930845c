package list_services

import (
	"errors"
	"net/http"

	"github.com/salabelleza/SLB-BookingService/internal/api/handlers"
	"github.com/salabelleza/SLB-BookingService/internal/service/catalog"
)

const (
	msgCatalogUnavailable = "el catalogo de servicios no esta disponible"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListServices(r.Context())
	if err != nil {
		if errors.Is(err, catalog.ErrCatalogUnavailable) {
			h.logger.Error("GET /services - Catalog unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCatalogUnavailable)
			return
		}
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - %d services fetched", len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
