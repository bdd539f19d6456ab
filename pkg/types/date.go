package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// DateFormat формат календарной даты (YYYY-MM-DD)
const DateFormat = "2006-01-02"

var (
	// ErrInvalidDateFormat возвращается при некорректном формате даты
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Date календарная дата без времени и без таймзоны.
// Дата — это ключ (год, месяц, день) в локальном календаре тенанта,
// поэтому никакой нормализации таймзон здесь нет и быть не может.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate создает дату из компонентов
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf извлекает календарную дату из time.Time
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate парсит дату из строки формата YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return DateOf(t), nil
}

// String возвращает дату в формате YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero проверяет, что дата не заполнена
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Weekday возвращает день недели (0 = воскресенье ... 6 = суббота)
func (d Date) Weekday() int {
	return int(d.toTime().Weekday())
}

// AddDays возвращает дату, сдвинутую на days дней
func (d Date) AddDays(days int) Date {
	return DateOf(d.toTime().AddDate(0, 0, days))
}

// Before сравнивает даты как календарные ключи
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After проверяет, что дата строго позже other
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// Equal проверяет равенство дат
func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// DaysInMonth возвращает количество дней в месяце даты
func (d Date) DaysInMonth() int {
	// День 0 следующего месяца — это последний день текущего
	return time.Date(d.Year, d.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// toTime возвращает полночь даты в UTC.
// Используется только для календарной арифметики, не для сравнения времени.
func (d Date) toTime() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Value реализует driver.Valuer для записи в колонку DATE
func (d Date) Value() (driver.Value, error) {
	return d.toTime(), nil
}

// Scan реализует sql.Scanner для чтения из колонки DATE
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidDateFormat, src)
	}
}
