package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Freeeeeet/trainer_scheduler/internal/model"
)

// TrainerDirectory справочник тренеров в памяти
type TrainerDirectory struct {
	mu       sync.RWMutex
	trainers map[string]model.Trainer
}

func NewTrainerDirectory(trainers ...model.Trainer) *TrainerDirectory {
	d := &TrainerDirectory{trainers: make(map[string]model.Trainer)}
	for _, t := range trainers {
		d.trainers[t.ID] = t
	}
	return d
}

// ParseTrainers разбирает список вида "t1:Anna Petrova,t2:Ivan".
// Все тренеры из списка активны
func ParseTrainers(list string) ([]model.Trainer, error) {
	var trainers []model.Trainer
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		id, name, ok := strings.Cut(item, ":")
		id, name = strings.TrimSpace(id), strings.TrimSpace(name)
		if !ok || id == "" || name == "" {
			return nil, fmt.Errorf("parse trainer %q: expected id:name", item)
		}

		trainers = append(trainers, model.Trainer{
			ID:     id,
			Name:   name,
			Status: model.TrainerStatusActive,
		})
	}
	return trainers, nil
}

func (d *TrainerDirectory) Lookup(_ context.Context, trainerID string) (*model.Trainer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.trainers[trainerID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// Put добавляет или обновляет тренера
func (d *TrainerDirectory) Put(t model.Trainer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.trainers[t.ID] = t
}
