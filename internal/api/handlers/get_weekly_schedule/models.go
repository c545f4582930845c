package get_weekly_schedule

import (
	"fmt"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
	getWeeklySchedule "github.com/salabelleza/SLB-BookingService/internal/usecase/get_weekly_schedule"
)

// CalendarBooking запись в ячейке календаря
type CalendarBooking struct {
	ID           string  `json:"id"`
	StartTime    string  `json:"startTime"`
	Status       string  `json:"status"`
	ServiceName  string  `json:"serviceName"`
	CustomerName *string `json:"customerName,omitempty"`
}

// WeeklyScheduleResponse HTTP response model.
// Ячейки адресуются ключом "YYYY-MM-DD-HH".
type WeeklyScheduleResponse struct {
	WeekStart string                       `json:"weekStart"`
	WeekEnd   string                       `json:"weekEnd"`
	Days      []string                     `json:"days"`
	Hours     []int                        `json:"hours"`
	Cells     map[string][]CalendarBooking `json:"cells"`
	IsEmpty   bool                         `json:"isEmpty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getWeeklySchedule.Response) *WeeklyScheduleResponse {
	schedule := resp.Schedule

	days := make([]string, 0, 7)
	for _, day := range schedule.Window.Days() {
		days = append(days, day.Format(domain.DateFormat))
	}

	cells := make(map[string][]CalendarBooking, len(schedule.Buckets))
	for key, bucket := range schedule.Buckets {
		cellKey := fmt.Sprintf("%s-%02d", key.Day, key.Hour)
		entries := make([]CalendarBooking, 0, len(bucket))
		for _, booking := range bucket {
			entries = append(entries, fromDomainBooking(booking))
		}
		cells[cellKey] = entries
	}

	return &WeeklyScheduleResponse{
		WeekStart: resp.WeekStart.Format(domain.DateFormat),
		WeekEnd:   resp.WeekEnd.Format(domain.DateFormat),
		Days:      days,
		Hours:     schedule.HourRange.Hours(),
		Cells:     cells,
		IsEmpty:   resp.IsEmpty,
	}
}

func fromDomainBooking(b *domain.Booking) CalendarBooking {
	entry := CalendarBooking{
		ID:          b.ID,
		StartTime:   b.StartTime.String(),
		Status:      string(b.Status),
		ServiceName: b.ServiceName,
	}

	if name := b.Customer.DisplayName(); name != "" {
		entry.CustomerName = &name
	}

	return entry
}
