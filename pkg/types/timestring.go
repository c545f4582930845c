package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeString represents a time of day in "HH:MM" format.
// Used for booking slot times where only minute precision matters
// and no date or timezone component is involved.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что строка имеет канонический формат "HH:MM".
// time.Parse принимает и "9:30", поэтому после парсинга сверяем
// обратное форматирование: без нулевого паддинга ломается
// строковое сравнение в IsBefore/IsAfter ("9:30" > "10:00").
func (t TimeString) Validate() error {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return fmt.Errorf("invalid time string format: %v", err)
	}
	if parsed.Format("15:04") != string(t) {
		return fmt.Errorf("invalid time string format: %q is not canonical HH:MM", string(t))
	}
	return nil
}

// Minutes возвращает количество минут с начала дня
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return 0, fmt.Errorf("invalid time string format: %v", err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// Hour возвращает час (0-23); для некорректного значения возвращает -1
func (t TimeString) Hour() int {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперёд.
// Возвращает ошибку, если результат выходит за пределы суток.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("time %s + %d minutes is out of day range", t, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Postgres отдаёт колонку TIME как "HH:MM:SS", обрезаем до минут
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = truncateToMinutes(v)
		return nil
	case []byte:
		*t = truncateToMinutes(string(v))
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

func truncateToMinutes(s string) TimeString {
	if len(s) > 5 {
		return TimeString(s[:5])
	}
	return TimeString(s)
}
