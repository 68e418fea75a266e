package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay граница суток, "24:00" допустимо только как конец смены
const MinutesPerDay = 24 * 60

// TimeOfDay время суток в минутах от полуночи, без даты
type TimeOfDay int

// NewTimeOfDay собирает время суток из часов и минут
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time of day %02d:%02d", hour, minute)
	}
	t := TimeOfDay(hour*60 + minute)
	if !t.Valid() {
		return 0, fmt.Errorf("invalid time of day %02d:%02d", hour, minute)
	}
	return t, nil
}

// MustTimeOfDay как NewTimeOfDay, но паникует на неверных значениях
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay разбирает строку вида "HH:MM"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse time of day %q: expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("parse time of day %q: bad minutes", s)
	}

	return NewTimeOfDay(hour, minute)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Valid проверяет что значение лежит в пределах суток
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t <= MinutesPerDay
}

// Add сдвигает время на minutes минут. Переход через полночь не заворачивается:
// результат больше 24:00 не попадёт ни в одну смену
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On возвращает момент времени для календарной даты date
func (t TimeOfDay) On(date time.Time) time.Time {
	d := DateOf(date)
	return d.Add(time.Duration(t) * time.Minute)
}

// DateOf отбрасывает время суток, оставляя календарную дату (полночь UTC)
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату в формате 2006-01-02
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// DateKey ключ календарной даты для индексов хранилищ
func DateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
