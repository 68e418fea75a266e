package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/trainer_scheduler/internal/model"
	"github.com/Freeeeeet/trainer_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TrainerRepository справочник тренеров. Планировщик только читает имя и статус
type TrainerRepository struct {
	*base.Repository
}

func NewTrainerRepository(pool *pgxpool.Pool) *TrainerRepository {
	return &TrainerRepository{Repository: base.NewRepository(pool)}
}

// Lookup получает тренера по ID, nil если такого нет
func (r *TrainerRepository) Lookup(ctx context.Context, trainerID string) (*model.Trainer, error) {
	query := `SELECT id, name, status FROM trainers WHERE id = $1`

	var (
		trainer model.Trainer
		status  string
	)
	err := r.QueryRow(ctx, query, trainerID).Scan(&trainer.ID, &trainer.Name, &status)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup trainer: %w", err)
	}
	trainer.Status = model.TrainerStatus(status)

	return &trainer, nil
}

// Upsert создаёт или обновляет тренера (используется при загрузке справочника из конфига)
func (r *TrainerRepository) Upsert(ctx context.Context, trainer model.Trainer) error {
	query := `
		INSERT INTO trainers (id, name, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, status = EXCLUDED.status
	`

	status := trainer.Status
	if status == "" {
		status = model.TrainerStatusActive
	}

	if _, err := r.Pool().Exec(ctx, query, trainer.ID, trainer.Name, string(status)); err != nil {
		return fmt.Errorf("upsert trainer: %w", err)
	}

	return nil
}
