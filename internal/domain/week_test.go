package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salabelleza/SLB-BookingService/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekOf_StartsOnMonday(t *testing.T) {
	// 2026-09-09 это среда
	window := WeekOf(date(2026, 9, 9))

	assert.Equal(t, date(2026, 9, 7), window.Start)
	assert.Equal(t, date(2026, 9, 13), window.End)
	assert.Equal(t, time.Monday, window.Start.Weekday())
}

func TestWeekOf_SundayBelongsToSameWeek(t *testing.T) {
	// Воскресенье закрывает неделю, а не открывает следующую
	window := WeekOf(date(2026, 9, 13))

	assert.Equal(t, date(2026, 9, 7), window.Start)
}

func TestWeekOf_MondayPivot(t *testing.T) {
	window := WeekOf(date(2026, 9, 7))

	assert.Equal(t, date(2026, 9, 7), window.Start)
}

func TestWeekWindow_Navigation(t *testing.T) {
	window := WeekOf(date(2026, 9, 9))

	next := window.Next()
	assert.Equal(t, date(2026, 9, 14), next.Start)

	previous := window.Previous()
	assert.Equal(t, date(2026, 8, 31), previous.Start)

	// Навигация туда-обратно возвращает исходное окно
	assert.Equal(t, window, next.Previous())
}

func TestWeekWindow_Days(t *testing.T) {
	window := WeekOf(date(2026, 9, 9))

	days := window.Days()
	require.Len(t, days, 7)
	assert.Equal(t, window.Start, days[0])
	assert.Equal(t, window.End, days[6])
}

func weekBooking(day time.Time, start string) *Booking {
	return &Booking{
		Date:      day,
		StartTime: types.TimeString(start),
		Status:    StatusConfirmed,
	}
}

func TestAggregateWeekly_TruncatesToHour(t *testing.T) {
	window := WeekOf(date(2026, 9, 7))
	monday := date(2026, 9, 7)

	early := weekBooking(monday, "10:05")
	late := weekBooking(monday, "10:40")
	other := weekBooking(monday, "11:00")

	schedule := AggregateWeekly([]*Booking{early, late, other}, window, DefaultHourRange())

	bucket := schedule.At(monday, 10)
	require.Len(t, bucket, 2)
	// Порядок внутри ячейки повторяет порядок входного списка
	assert.Same(t, early, bucket[0])
	assert.Same(t, late, bucket[1])

	require.Len(t, schedule.At(monday, 11), 1)
	assert.False(t, schedule.IsEmpty())
}

func TestAggregateWeekly_SkipsBookingsOutsideWindow(t *testing.T) {
	window := WeekOf(date(2026, 9, 7))

	inside := weekBooking(date(2026, 9, 8), "10:00")
	before := weekBooking(date(2026, 9, 6), "10:00")
	after := weekBooking(date(2026, 9, 14), "10:00")

	schedule := AggregateWeekly([]*Booking{inside, before, after}, window, DefaultHourRange())

	require.Len(t, schedule.Buckets, 1)
	assert.Len(t, schedule.At(date(2026, 9, 8), 10), 1)
}

func TestAggregateWeekly_EmptyWeek(t *testing.T) {
	window := WeekOf(date(2026, 9, 7))

	schedule := AggregateWeekly(nil, window, DefaultHourRange())

	assert.True(t, schedule.IsEmpty())
	assert.Empty(t, schedule.Buckets)
}

func TestAggregateWeekly_BookingOutsideHourRangeCountsAsNonEmpty(t *testing.T) {
	window := WeekOf(date(2026, 9, 7))

	// 08:00 вне сетки 09:00-19:00, но неделя всё равно непустая
	outOfRange := weekBooking(date(2026, 9, 7), "08:00")

	schedule := AggregateWeekly([]*Booking{outOfRange}, window, DefaultHourRange())

	assert.False(t, schedule.IsEmpty())
}

func TestHourRange_Hours(t *testing.T) {
	hours := DefaultHourRange().Hours()

	require.Len(t, hours, 10)
	assert.Equal(t, 9, hours[0])
	assert.Equal(t, 18, hours[len(hours)-1])

	assert.Nil(t, HourRange{StartHour: 10, EndHour: 10}.Hours())
}
