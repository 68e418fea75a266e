package service

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/trainer_scheduler/internal/model"
)

var (
	ErrInvalidTimeRange   = model.ErrInvalidTimeRange
	ErrSlotNotFound       = model.ErrSlotNotFound
	ErrSchedulingConflict = errors.New("scheduling conflict")
	ErrTrainerNotFound    = errors.New("trainer not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrAlreadyCancelled   = errors.New("session already cancelled")
	ErrInvalidTransition  = errors.New("invalid session status transition")
	ErrInvalidDuration    = errors.New("duration must be positive")
)

// ConflictReason почему запрошенное время недоступно
type ConflictReason string

const (
	ConflictOutsideShift ConflictReason = "outside_shift"
	ConflictOverlap      ConflictReason = "overlap"
)

// ConflictError детали конфликта при записи. errors.Is(err, ErrSchedulingConflict) == true
type ConflictError struct {
	Reason               ConflictReason
	TrainerID            string
	ConflictingSessionID string
}

func (e *ConflictError) Error() string {
	if e.ConflictingSessionID != "" {
		return fmt.Sprintf("%s: trainer %s: %s with session %s", ErrSchedulingConflict, e.TrainerID, e.Reason, e.ConflictingSessionID)
	}
	return fmt.Sprintf("%s: trainer %s: %s", ErrSchedulingConflict, e.TrainerID, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrSchedulingConflict
}
