package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/salabelleza/SLB-BookingService/internal/api/handlers"
	"github.com/salabelleza/SLB-BookingService/internal/api/middleware"
	"github.com/salabelleza/SLB-BookingService/internal/domain"
	getAvailableSlots "github.com/salabelleza/SLB-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate        = "falta el parametro date"
	msgInvalidDate        = "formato de fecha invalido, se espera YYYY-MM-DD"
	msgInvalidBookingDate = "fecha de reserva invalida"
	msgDateTooFar         = "la fecha esta demasiado lejos en el futuro"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD&grid=staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		h.logger.Warn("GET /slots - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateParam)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date format: %s", dateParam)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Мелкая сетка доступна только персоналу
	identity := middleware.IdentityFromContext(r.Context())
	staffGrid := identity.Staff && r.URL.Query().Get("grid") == "staff"

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Date:      date,
		StaffGrid: staffGrid,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /slots - Invalid booking date: %s", dateParam)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /slots - Date too far in future: %s", dateParam)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /slots - Failed to get slots: date=%s, error=%v", dateParam, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - %d slots available for date=%s", len(result.Slots), dateParam)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
