package get_user_bookings

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
	msgAccessDenied  = "acceso denegado"
	msgInvalidStatus = "estado de reserva invalido"
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

// Handle GET /api/v1/users/{userId}/bookings?status=confirmed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	identity := middleware.IdentityFromContext(r.Context())

	req := &models.GetUserBookingsRequest{
		Actor:  models.Actor{UserID: identity.UserID, Staff: identity.Staff},
		UserID: userID,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetUserBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /users/{userId}/bookings - Access denied: user=%s, requested=%s",
				identity.UserID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /users/{userId}/bookings - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{userId}/bookings - Failed: user=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{userId}/bookings - %d bookings fetched for user=%s",
		len(result.Bookings), userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
