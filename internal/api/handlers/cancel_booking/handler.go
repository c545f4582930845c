package cancel_booking

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
	msgCannotCancel    = "la reserva ya no se puede cancelar"
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

// Handle POST /api/v1/bookings/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["id"]
	identity := middleware.IdentityFromContext(r.Context())

	req := &models.CancelBookingRequest{
		Actor: models.Actor{UserID: identity.UserID, Staff: identity.Staff},
	}

	if err := h.service.Cancel(r.Context(), bookingID, req); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/cancel - Access denied: id=%s, user=%s",
				bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("POST /bookings/{id}/cancel - Cannot cancel: id=%s", bookingID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed: id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled: id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
