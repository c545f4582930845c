package get_weekly_schedule

import (
	"net/http"
	"time"

	"github.com/salabelleza/SLB-BookingService/internal/api/handlers"
	"github.com/salabelleza/SLB-BookingService/internal/domain"
	getWeeklySchedule "github.com/salabelleza/SLB-BookingService/internal/usecase/get_weekly_schedule"
)

const (
	msgInvalidDate = "formato de fecha invalido, se espera YYYY-MM-DD"
)

type Handler struct {
	useCase GetWeeklyScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetWeeklyScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/week?pivot=YYYY-MM-DD
// Без параметра pivot возвращается текущая неделя.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var pivot time.Time

	if pivotParam := r.URL.Query().Get("pivot"); pivotParam != "" {
		parsed, err := time.Parse(domain.DateFormat, pivotParam)
		if err != nil {
			h.logger.Warn("GET /schedule/week - Invalid pivot date: %s", pivotParam)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		pivot = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getWeeklySchedule.Request{Pivot: pivot})
	if err != nil {
		h.logger.Error("GET /schedule/week - Failed to get schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule/week - Week %s fetched, empty=%t",
		result.WeekStart.Format(domain.DateFormat), result.IsEmpty)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
