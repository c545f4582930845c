package create_booking

import (
	"errors"
	"net/http"

	"github.com/salabelleza/SLB-BookingService/internal/api/handlers"
	"github.com/salabelleza/SLB-BookingService/internal/api/middleware"
	createBooking "github.com/salabelleza/SLB-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "cuerpo de solicitud invalido"
	msgInvalidDate        = "formato de fecha invalido, se espera YYYY-MM-DD"
	msgInvalidTime        = "formato de hora invalido, se espera HH:MM"
	msgSlotNotAvailable   = "el horario seleccionado ya no esta disponible"
	msgServiceNotFound    = "servicio no encontrado"
	msgIdentityNotFound   = "usuario no encontrado"
	msgInvalidBookingDate = "fecha de reserva invalida"
	msgDateTooFar         = "la fecha de reserva esta demasiado lejos en el futuro"
	msgInvalidTimeSlot    = "horario invalido"
	msgTooLateToBook      = "es demasiado tarde para reservar este horario"
	msgWalkInStaffOnly    = "solo el personal puede registrar reservas presenciales"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())

	if req.StaffWalkIn && !identity.Staff {
		h.logger.Warn("POST /bookings - Walk-in booking attempted by user=%s", identity.UserID)
		handlers.RespondForbidden(w, msgWalkInStaffOnly)
		return
	}

	// Для авторизованного запроса бронирование привязывается к аккаунту,
	// иначе ожидаются гостевые данные в теле
	var userID *string
	if !identity.Anonymous() && req.GuestName == nil {
		userID = &identity.UserID
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		switch {
		case errors.Is(err, errInvalidTimeFormat):
			handlers.RespondBadRequest(w, msgInvalidTime)
		case errors.Is(err, errInvalidDateFormat):
			handlers.RespondBadRequest(w, msgInvalidDate)
		default:
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, time=%s", req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrIdentityNotFound):
			h.logger.Warn("POST /bookings - Identity not found: user_id=%s", identity.UserID)
			handlers.RespondNotFound(w, msgIdentityNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: time=%s", req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: date=%s, time=%s", req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, time=%s, error=%v",
				req.BookingDate, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, status=%s",
		result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
