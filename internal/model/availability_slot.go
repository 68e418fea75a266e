package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTimeRange начало смены не раньше её конца
	ErrInvalidTimeRange = errors.New("invalid time range")
	// ErrSlotNotFound смена с таким ID не найдена
	ErrSlotNotFound = errors.New("availability slot not found")
)

// AvailabilitySlot повторяющаяся еженедельная смена тренера
type AvailabilitySlot struct {
	ID        string       `json:"id"`
	TrainerID string       `json:"trainer_id"`
	DayOfWeek time.Weekday `json:"day_of_week"` // 0 = Sunday, 6 = Saturday
	StartTime TimeOfDay    `json:"start_time"`
	EndTime   TimeOfDay    `json:"end_time"`
	CreatedAt time.Time    `json:"created_at"`
}

// Validate проверяет диапазон смены
func (s AvailabilitySlot) Validate() error {
	return ValidateSlotRange(s.DayOfWeek, s.StartTime, s.EndTime)
}

// ValidateSlotRange возвращает ErrInvalidTimeRange если start >= end
// или значения выходят за пределы недели/суток
func ValidateSlotRange(day time.Weekday, start, end TimeOfDay) error {
	if day < time.Sunday || day > time.Saturday {
		return fmt.Errorf("%w: day of week %d", ErrInvalidTimeRange, day)
	}
	if !start.Valid() || !end.Valid() {
		return fmt.Errorf("%w: %s-%s out of day bounds", ErrInvalidTimeRange, start, end)
	}
	if start >= end {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidTimeRange, start, end)
	}
	return nil
}

// Covers проверяет что интервал [start, end) целиком лежит внутри смены
func (s AvailabilitySlot) Covers(start, end TimeOfDay) bool {
	return s.StartTime <= start && end <= s.EndTime
}
