package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/trainer_scheduler/internal/idgen"
	"github.com/Freeeeeet/trainer_scheduler/internal/model"
	"github.com/Freeeeeet/trainer_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const slotColumns = `id, trainer_id, day_of_week, start_minute, end_minute, created_at`

// AvailabilityRepository смены тренеров в PostgreSQL
type AvailabilityRepository struct {
	*base.Repository
	ids idgen.Generator
}

func NewAvailabilityRepository(pool *pgxpool.Pool, ids idgen.Generator) *AvailabilityRepository {
	return &AvailabilityRepository{
		Repository: base.NewRepository(pool),
		ids:        ids,
	}
}

// AddSlot создаёт новую смену
func (r *AvailabilityRepository) AddSlot(ctx context.Context, trainerID string, day time.Weekday, start, end model.TimeOfDay) (string, error) {
	if err := model.ValidateSlotRange(day, start, end); err != nil {
		return "", fmt.Errorf("add slot: %w", err)
	}

	query := `
		INSERT INTO availability_slots (id, trainer_id, day_of_week, start_minute, end_minute)
		VALUES ($1, $2, $3, $4, $5)
	`

	id := r.ids.NewID()
	_, err := r.Pool().Exec(ctx, query, id, trainerID, int(day), int(start), int(end))
	if err != nil {
		return "", fmt.Errorf("add slot: %w", err)
	}

	return id, nil
}

// ReplaceSlot заменяет смену целиком
func (r *AvailabilityRepository) ReplaceSlot(ctx context.Context, slot model.AvailabilitySlot) error {
	if err := slot.Validate(); err != nil {
		return fmt.Errorf("replace slot: %w", err)
	}

	query := `
		UPDATE availability_slots
		SET trainer_id = $2, day_of_week = $3, start_minute = $4, end_minute = $5
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query,
		slot.ID,
		slot.TrainerID,
		int(slot.DayOfWeek),
		int(slot.StartTime),
		int(slot.EndTime),
	)
	if err != nil {
		return fmt.Errorf("replace slot: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("replace slot %s: %w", slot.ID, model.ErrSlotNotFound)
	}

	return nil
}

// RemoveSlot удаляет смену, отсутствие строки не ошибка
func (r *AvailabilityRepository) RemoveSlot(ctx context.Context, slotID string) error {
	query := `DELETE FROM availability_slots WHERE id = $1`

	if _, err := r.Pool().Exec(ctx, query, slotID); err != nil {
		return fmt.Errorf("remove slot: %w", err)
	}

	return nil
}

// GetSlot получает смену по ID
func (r *AvailabilityRepository) GetSlot(ctx context.Context, slotID string) (*model.AvailabilitySlot, error) {
	query := `SELECT ` + slotColumns + ` FROM availability_slots WHERE id = $1`

	slot, err := scanSlot(r.QueryRow(ctx, query, slotID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return &slot, nil
}

// ListByTrainer получает все смены тренера
func (r *AvailabilityRepository) ListByTrainer(ctx context.Context, trainerID string) ([]model.AvailabilitySlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM availability_slots
		WHERE trainer_id = $1
		ORDER BY day_of_week, start_minute, id
	`

	rows, err := r.Query(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("list slots by trainer: %w", err)
	}

	slots, err := base.CollectRows(rows, scanSlot)
	if err != nil {
		return nil, fmt.Errorf("scan slot: %w", err)
	}

	return slots, nil
}

// ListByTrainerAndDay получает смены тренера на день недели
func (r *AvailabilityRepository) ListByTrainerAndDay(ctx context.Context, trainerID string, day time.Weekday) ([]model.AvailabilitySlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM availability_slots
		WHERE trainer_id = $1 AND day_of_week = $2
		ORDER BY start_minute, id
	`

	rows, err := r.Query(ctx, query, trainerID, int(day))
	if err != nil {
		return nil, fmt.Errorf("list slots by trainer and day: %w", err)
	}

	slots, err := base.CollectRows(rows, scanSlot)
	if err != nil {
		return nil, fmt.Errorf("scan slot: %w", err)
	}

	return slots, nil
}

func scanSlot(row pgx.Row) (model.AvailabilitySlot, error) {
	var (
		slot            model.AvailabilitySlot
		day, start, end int
	)

	err := row.Scan(
		&slot.ID,
		&slot.TrainerID,
		&day,
		&start,
		&end,
		&slot.CreatedAt,
	)
	if err != nil {
		return model.AvailabilitySlot{}, err
	}

	slot.DayOfWeek = time.Weekday(day)
	slot.StartTime = model.TimeOfDay(start)
	slot.EndTime = model.TimeOfDay(end)

	return slot, nil
}
