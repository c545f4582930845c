package get_weekly_schedule

import (
	"time"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
)

// Request модель запроса недельного расписания.
// Pivot — любая дата внутри интересующей недели; нулевой pivot
// означает текущую неделю.
type Request struct {
	Pivot time.Time
}

// Response модель ответа с недельным расписанием
type Response struct {
	WeekStart time.Time // Понедельник недели
	WeekEnd   time.Time // Воскресенье недели
	Schedule  *domain.WeeklySchedule
	IsEmpty   bool
}
