package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Freeeeeet/trainer_scheduler/internal/model"
	"go.uber.org/zap"
)

// AddShift добавляет еженедельную смену тренеру. Пересечение с другими сменами
// того же дня не проверяется. Уже записанные тренировки не затрагиваются
func (s *SchedulingService) AddShift(ctx context.Context, trainerID string, day time.Weekday, start, end model.TimeOfDay) (string, error) {
	slotID, err := s.slots.AddSlot(ctx, trainerID, day, start, end)
	if err != nil {
		return "", err
	}

	s.logger.Info("Shift added",
		zap.String("slot_id", slotID),
		zap.String("trainer_id", trainerID),
		zap.String("day", day.String()),
		zap.String("start_time", start.String()),
		zap.String("end_time", end.String()),
	)

	return slotID, nil
}

// ReplaceShift заменяет смену целиком по её ID
func (s *SchedulingService) ReplaceShift(ctx context.Context, slot model.AvailabilitySlot) error {
	if err := s.slots.ReplaceSlot(ctx, slot); err != nil {
		return err
	}

	s.logger.Info("Shift replaced",
		zap.String("slot_id", slot.ID),
		zap.String("trainer_id", slot.TrainerID),
		zap.String("day", slot.DayOfWeek.String()),
		zap.String("start_time", slot.StartTime.String()),
		zap.String("end_time", slot.EndTime.String()),
	)

	return nil
}

// RemoveShift удаляет смену, несуществующий ID не ошибка
func (s *SchedulingService) RemoveShift(ctx context.Context, slotID string) error {
	if err := s.slots.RemoveSlot(ctx, slotID); err != nil {
		return fmt.Errorf("remove shift: %w", err)
	}

	s.logger.Info("Shift removed", zap.String("slot_id", slotID))
	return nil
}

// GetShift получает смену по ID
func (s *SchedulingService) GetShift(ctx context.Context, slotID string) (*model.AvailabilitySlot, error) {
	slot, err := s.slots.GetSlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get shift: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slotID)
	}
	return slot, nil
}

// ListShifts все смены тренера
func (s *SchedulingService) ListShifts(ctx context.Context, trainerID string) ([]model.AvailabilitySlot, error) {
	slots, err := s.slots.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return slots, nil
}

// ListShiftsForDay смены тренера на день недели
func (s *SchedulingService) ListShiftsForDay(ctx context.Context, trainerID string, day time.Weekday) ([]model.AvailabilitySlot, error) {
	slots, err := s.slots.ListByTrainerAndDay(ctx, trainerID, day)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return slots, nil
}

// SuggestStartTimes возвращает времена начала на сетке stepMinutes, на которые
// можно записаться к тренеру в эту дату. Сетка отсчитывается от начала каждой смены.
// Результат отсортирован и без повторов
func (s *SchedulingService) SuggestStartTimes(ctx context.Context, trainerID string, date time.Time, durationMinutes, stepMinutes int) ([]model.TimeOfDay, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}
	if stepMinutes <= 0 {
		stepMinutes = 30
	}

	date = model.DateOf(date)

	shifts, err := s.slots.ListByTrainerAndDay(ctx, trainerID, date.Weekday())
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}

	existing, err := s.sessions.FindByTrainerAndDate(ctx, trainerID, date)
	if err != nil {
		return nil, fmt.Errorf("find trainer sessions: %w", err)
	}

	seen := make(map[model.TimeOfDay]struct{})
	var starts []model.TimeOfDay

	for _, shift := range shifts {
		for start := shift.StartTime; start.Add(durationMinutes) <= shift.EndTime; start = start.Add(stepMinutes) {
			if _, ok := seen[start]; ok {
				continue
			}
			if overlapsAny(existing, start, start.Add(durationMinutes)) {
				continue
			}
			seen[start] = struct{}{}
			starts = append(starts, start)
		}
	}

	slices.Sort(starts)
	return starts, nil
}

func overlapsAny(sessions []model.Session, start, end model.TimeOfDay) bool {
	for _, session := range sessions {
		if session.IsActive() && session.Overlaps(start, end) {
			return true
		}
	}
	return false
}
