package get_available_slots

import (
	"time"

	"github.com/salabelleza/SLB-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date      time.Time // Дата для получения слотов (без времени)
	StaffGrid bool      // true — мелкая сетка для персонала (5 минут вместо 30)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time          // Дата, на которую запрашивались слоты
	IntervalMinutes int                // Шаг использованной сетки
	Slots           []types.TimeString // Свободные слоты в порядке сетки
}
