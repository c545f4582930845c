// Package slots генерирует слот-сетку рабочего дня и фильтрует её
// по уже существующим бронированиям. Все функции чистые: без I/O,
// без мутации входных данных, результат детерминирован.
package slots

import (
	"errors"
	"fmt"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
	"github.com/salabelleza/SLB-BookingService/pkg/types"
)

var (
	// ErrInvalidConfiguration возвращается при нарушении контракта генератора.
	// Это ошибка программирования, а не пользовательский ввод.
	ErrInvalidConfiguration = errors.New("slots: invalid slot grid configuration")
)

// Generate возвращает упорядоченную сетку слотов рабочего дня:
// каждое кратное intervalMinutes время от startHour:00 до endHour:00
// (не включая endHour:00). Генератор не знает, кто его вызывает:
// интервал (30 минут для публичной записи, 5 для персонала) задаёт вызывающий.
func Generate(startHour, endHour, intervalMinutes int) ([]types.TimeString, error) {
	if endHour <= startHour {
		return nil, fmt.Errorf("%w: endHour (%d) must be greater than startHour (%d)",
			ErrInvalidConfiguration, endHour, startHour)
	}
	if startHour < 0 || endHour > 24 {
		return nil, fmt.Errorf("%w: hours must be within [0, 24], got [%d, %d]",
			ErrInvalidConfiguration, startHour, endHour)
	}
	if intervalMinutes <= 0 || intervalMinutes > 60 {
		return nil, fmt.Errorf("%w: intervalMinutes must be in (0, 60], got %d",
			ErrInvalidConfiguration, intervalMinutes)
	}

	startMinutes := startHour * 60
	endMinutes := endHour * 60

	result := make([]types.TimeString, 0, (endMinutes-startMinutes)/intervalMinutes)
	for m := startMinutes; m < endMinutes; m += intervalMinutes {
		result = append(result, types.TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)))
	}

	return result, nil
}

// BlockingPolicy определяет, какие бронирования занимают свой слот.
//
// Историческое поведение блокировало слот любым бронированием, включая
// отменённые, что почти наверняка было дефектом: отменённая запись
// навсегда выедала время из сетки. Политика делает выбор явным.
type BlockingPolicy int

const (
	// BlockActiveOnly отменённые бронирования слот не занимают (поведение по умолчанию)
	BlockActiveOnly BlockingPolicy = iota

	// BlockAllStatuses любое бронирование занимает слот, включая отменённые
	BlockAllStatuses
)

// Available возвращает подмножество candidates, не занятое бронированиями
// из bookingsOnDate. Слот считается занятым при точном совпадении времени
// начала. Порядок candidates сохраняется, входные слайсы не мутируются.
func Available(
	candidates []types.TimeString,
	bookingsOnDate []*domain.Booking,
	policy BlockingPolicy,
) []types.TimeString {
	taken := make(map[types.TimeString]struct{}, len(bookingsOnDate))
	for _, booking := range bookingsOnDate {
		if policy == BlockActiveOnly && !booking.IsActive() {
			continue
		}
		taken[booking.StartTime] = struct{}{}
	}

	available := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if _, occupied := taken[slot]; !occupied {
			available = append(available, slot)
		}
	}

	return available
}
