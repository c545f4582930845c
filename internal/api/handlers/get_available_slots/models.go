package get_available_slots

import (
	"github.com/salabelleza/SLB-BookingService/internal/domain"
	getAvailableSlots "github.com/salabelleza/SLB-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`
	IntervalMinutes int      `json:"intervalMinutes"`
	Slots           []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		IntervalMinutes: resp.IntervalMinutes,
		Slots:           slots,
	}
}
