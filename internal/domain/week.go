package domain

import "time"

// WeekWindow is a Monday-to-Sunday range used by the weekly staff calendar.
// Navigation never mutates booking data: next/previous/today simply re-derive
// the window from a new pivot date.
type WeekWindow struct {
	Start time.Time // Понедельник, 00:00
	End   time.Time // Воскресенье, 00:00
}

// WeekOf возвращает неделю (с понедельника), содержащую pivot
func WeekOf(pivot time.Time) WeekWindow {
	day := truncateToDay(pivot)

	// time.Weekday: Sunday = 0, нам нужен понедельник как начало недели
	offset := int(day.Weekday()-time.Monday+7) % 7
	start := day.AddDate(0, 0, -offset)

	return WeekWindow{
		Start: start,
		End:   start.AddDate(0, 0, 6),
	}
}

// Next возвращает следующую неделю
func (w WeekWindow) Next() WeekWindow {
	return WeekOf(w.Start.AddDate(0, 0, 7))
}

// Previous возвращает предыдущую неделю
func (w WeekWindow) Previous() WeekWindow {
	return WeekOf(w.Start.AddDate(0, 0, -7))
}

// Days возвращает 7 дней недели по порядку
func (w WeekWindow) Days() []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// Contains возвращает true, если дата попадает в окно недели (включительно)
func (w WeekWindow) Contains(date time.Time) bool {
	day := truncateToDay(date)
	return !day.Before(w.Start) && !day.After(w.End)
}

// HourRange is the visible hourly range of the calendar grid
type HourRange struct {
	StartHour int
	EndHour   int
}

// DefaultHourRange возвращает стандартное окно календаря 09:00-19:00
func DefaultHourRange() HourRange {
	return HourRange{StartHour: DefaultWorkingDayStartHour, EndHour: DefaultWorkingDayEndHour}
}

// Hours возвращает список часов сетки (EndHour не включается)
func (r HourRange) Hours() []int {
	if r.EndHour <= r.StartHour {
		return nil
	}
	hours := make([]int, 0, r.EndHour-r.StartHour)
	for h := r.StartHour; h < r.EndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// BucketKey key of one calendar cell: a day and a truncated hour.
// Day хранится строкой YYYY-MM-DD, чтобы ключ был сравнимым.
type BucketKey struct {
	Day  string
	Hour int
}

// WeeklySchedule bookings of one week bucketed into (day, hour) cells
type WeeklySchedule struct {
	Window    WeekWindow
	HourRange HourRange
	Buckets   map[BucketKey][]*Booking

	// total количество бронирований, чья дата попала в окно недели
	// (независимо от попадания в часы сетки)
	total int
}

// AggregateWeekly раскладывает бронирования по ячейкам (день, час).
// Время бронирования усекается до часа: 10:05 и 10:40 попадают в одну ячейку.
// Порядок внутри ячейки повторяет порядок входного списка.
func AggregateWeekly(bookings []*Booking, window WeekWindow, hourRange HourRange) *WeeklySchedule {
	schedule := &WeeklySchedule{
		Window:    window,
		HourRange: hourRange,
		Buckets:   make(map[BucketKey][]*Booking),
	}

	for _, booking := range bookings {
		if !window.Contains(booking.Date) {
			continue
		}
		schedule.total++

		key := BucketKey{
			Day:  booking.Date.Format(DateFormat),
			Hour: booking.StartTime.Hour(),
		}
		schedule.Buckets[key] = append(schedule.Buckets[key], booking)
	}

	return schedule
}

// At возвращает бронирования ячейки (день, час) в стабильном порядке
func (s *WeeklySchedule) At(day time.Time, hour int) []*Booking {
	return s.Buckets[BucketKey{Day: day.Format(DateFormat), Hour: hour}]
}

// IsEmpty возвращает true, если в окне недели нет ни одного бронирования.
// Проверка не зависит от сетки часов: бронирование вне HourRange
// всё равно делает неделю непустой.
func (s *WeeklySchedule) IsEmpty() bool {
	return s.total == 0
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
