package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salabelleza/SLB-BookingService/internal/api/handlers"
	"github.com/salabelleza/SLB-BookingService/internal/api/middleware"
	"github.com/salabelleza/SLB-BookingService/internal/service/bookings"
	"github.com/salabelleza/SLB-BookingService/internal/service/bookings/models"
)

const (
	msgBookingNotFound = "reserva no encontrada"
	msgAccessDenied    = "acceso denegado"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["id"]
	identity := middleware.IdentityFromContext(r.Context())

	actor := models.Actor{UserID: identity.UserID, Staff: identity.Staff}

	result, err := h.service.GetByID(r.Context(), bookingID, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - Access denied: id=%s, user=%s", bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking fetched: id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
