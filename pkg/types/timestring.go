package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of range")
)

// TimeString время в формате "HH:MM" (wall-clock, без даты и таймзоны)
// Используется для времени начала слотов и приёмов
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
func NewTimeStringFromMinutes(total int) (TimeString, error) {
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, total)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат "HH:MM" (часы 00-23, минуты 00-59)
func (t TimeString) Validate() error {
	h, m, err := t.parse()
	if err != nil {
		return err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	h, m, err := t.parse()
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// AddMinutes возвращает время через delta минут
// Допускает результат ровно в полночь следующего дня ("24:00") для сравнения
// конца интервала, но не позже
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(total + delta)
}

// IsBefore проверяет, что время строго раньше other
// Некорректные значения считаются "не раньше"
func (t TimeString) IsBefore(other TimeString) bool {
	a, err1 := t.Minutes()
	b, err2 := other.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return a < b
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, err1 := t.Minutes()
	b, err2 := other.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return a > b
}

// Scan реализует sql.Scanner
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(v)
	case time.Time:
		*t = NewTimeString(v)
	case nil:
		*t = ""
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// parse разбирает "HH:MM" (также допускает "H:MM" и "24:00")
func (t TimeString) parse() (int, int, error) {
	var h, m int
	n, err := fmt.Sscanf(string(t), "%d:%d", &h, &m)
	if err != nil || n != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if h < 0 || m < 0 || m > 59 || h*60+m > minutesPerDay {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return h, m, nil
}
