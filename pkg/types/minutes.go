package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 1440

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

	// ErrMinutesOutOfRange возвращается, когда значение выходит за пределы суток
	ErrMinutesOutOfRange = errors.New("minutes out of range [0, 1440]")
)

// MinuteOfDay время суток как целое число минут от полуночи.
// Вся арифметика планирования ведётся в целых минутах — без округлений,
// без плавающей точки и без таймзон.
type MinuteOfDay int

// MinuteOfDayFromTime возвращает количество минут от полуночи для момента t
func MinuteOfDayFromTime(t time.Time) MinuteOfDay {
	return MinuteOfDay(t.Hour()*60 + t.Minute())
}

// ParseMinuteOfDay парсит время из строки формата HH:MM
func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(s, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return MinuteOfDay(hours*60 + minutes), nil
}

// String возвращает время в формате HH:MM
func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Validate проверяет, что значение лежит в пределах суток.
// Верхняя граница включительно: 1440 — допустимый конец интервала (полночь).
func (m MinuteOfDay) Validate() error {
	if m < 0 || m > MinutesPerDay {
		return fmt.Errorf("%w: %d", ErrMinutesOutOfRange, int(m))
	}
	return nil
}

// Add возвращает время, сдвинутое на minutes минут
func (m MinuteOfDay) Add(minutes int) MinuteOfDay {
	return m + MinuteOfDay(minutes)
}

// Value реализует driver.Valuer для записи в колонку INTEGER
func (m MinuteOfDay) Value() (driver.Value, error) {
	return int64(m), nil
}

// Scan реализует sql.Scanner для чтения из колонки INTEGER
func (m *MinuteOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*m = MinuteOfDay(v)
		return nil
	case nil:
		*m = 0
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrMinutesOutOfRange, src)
	}
}
