package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Freeeeeet/trainer_scheduler/internal/idgen"
	"github.com/Freeeeeet/trainer_scheduler/internal/model"
)

// AvailabilityStore смены тренеров в памяти процесса
type AvailabilityStore struct {
	mu    sync.RWMutex
	slots map[string]model.AvailabilitySlot // slotID -> slot
	ids   idgen.Generator
	now   func() time.Time
}

func NewAvailabilityStore(ids idgen.Generator) *AvailabilityStore {
	return &AvailabilityStore{
		slots: make(map[string]model.AvailabilitySlot),
		ids:   ids,
		now:   time.Now,
	}
}

// AddSlot сохраняет новую смену и возвращает её ID
func (s *AvailabilityStore) AddSlot(_ context.Context, trainerID string, day time.Weekday, start, end model.TimeOfDay) (string, error) {
	if err := model.ValidateSlotRange(day, start, end); err != nil {
		return "", fmt.Errorf("add slot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot := model.AvailabilitySlot{
		ID:        s.ids.NewID(),
		TrainerID: trainerID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		CreatedAt: s.now(),
	}
	s.slots[slot.ID] = slot

	return slot.ID, nil
}

// ReplaceSlot заменяет смену целиком
func (s *AvailabilityStore) ReplaceSlot(_ context.Context, slot model.AvailabilitySlot) error {
	if err := slot.Validate(); err != nil {
		return fmt.Errorf("replace slot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.slots[slot.ID]
	if !ok {
		return fmt.Errorf("replace slot %s: %w", slot.ID, model.ErrSlotNotFound)
	}
	slot.CreatedAt = existing.CreatedAt
	s.slots[slot.ID] = slot

	return nil
}

func (s *AvailabilityStore) RemoveSlot(_ context.Context, slotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, slotID)
	return nil
}

func (s *AvailabilityStore) GetSlot(_ context.Context, slotID string) (*model.AvailabilitySlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.slots[slotID]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (s *AvailabilityStore) ListByTrainer(_ context.Context, trainerID string) ([]model.AvailabilitySlot, error) {
	return s.filter(func(slot model.AvailabilitySlot) bool {
		return slot.TrainerID == trainerID
	}), nil
}

func (s *AvailabilityStore) ListByTrainerAndDay(_ context.Context, trainerID string, day time.Weekday) ([]model.AvailabilitySlot, error) {
	return s.filter(func(slot model.AvailabilitySlot) bool {
		return slot.TrainerID == trainerID && slot.DayOfWeek == day
	}), nil
}

func (s *AvailabilityStore) filter(match func(model.AvailabilitySlot) bool) []model.AvailabilitySlot {
	s.mu.RLock()
	var slots []model.AvailabilitySlot
	for _, slot := range s.slots {
		if match(slot) {
			slots = append(slots, slot)
		}
	}
	s.mu.RUnlock()

	sortSlots(slots)
	return slots
}

// sortSlots порядок как у SQL-хранилища: день, начало, ID
func sortSlots(slots []model.AvailabilitySlot) {
	slices.SortFunc(slots, func(a, b model.AvailabilitySlot) int {
		return cmp.Or(
			cmp.Compare(a.DayOfWeek, b.DayOfWeek),
			cmp.Compare(a.StartTime, b.StartTime),
			cmp.Compare(a.ID, b.ID),
		)
	})
}
