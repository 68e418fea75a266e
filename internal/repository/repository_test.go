package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Freeeeeet/trainer_scheduler/internal/app"
	"github.com/Freeeeeet/trainer_scheduler/internal/idgen"
	"github.com/Freeeeeet/trainer_scheduler/internal/lock"
	"github.com/Freeeeeet/trainer_scheduler/internal/model"
	"github.com/Freeeeeet/trainer_scheduler/internal/repository"
	"github.com/Freeeeeet/trainer_scheduler/internal/service"
	"github.com/Freeeeeet/trainer_scheduler/migrations"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// openTestPool подключается к TEST_DB_DSN и накатывает миграции
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	pool, err := app.NewPool(ctx, dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator, err := app.NewMigrator(pool, migrations.FS, ".", logger)
	require.NoError(t, err)
	require.NoError(t, migrator.Run(ctx))
	require.NoError(t, migrator.Close())

	return pool
}

func monday() time.Time {
	return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
}

func TestAvailabilityRepository(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repo := repository.NewAvailabilityRepository(pool, idgen.UUID{})
	trainerID := "t-" + uuid.NewString()

	_, err := repo.AddSlot(ctx, trainerID, time.Monday, model.MustTimeOfDay(12, 0), model.MustTimeOfDay(9, 0))
	assert.ErrorIs(t, err, model.ErrInvalidTimeRange)

	afternoon, err := repo.AddSlot(ctx, trainerID, time.Monday, model.MustTimeOfDay(14, 0), model.MustTimeOfDay(18, 0))
	require.NoError(t, err)
	morning, err := repo.AddSlot(ctx, trainerID, time.Monday, model.MustTimeOfDay(9, 0), model.MustTimeOfDay(12, 0))
	require.NoError(t, err)
	_, err = repo.AddSlot(ctx, trainerID, time.Sunday, model.MustTimeOfDay(10, 0), model.MustTimeOfDay(11, 0))
	require.NoError(t, err)

	slots, err := repo.ListByTrainerAndDay(ctx, trainerID, time.Monday)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, morning, slots[0].ID)
	assert.Equal(t, afternoon, slots[1].ID)

	all, err := repo.ListByTrainer(ctx, trainerID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, time.Sunday, all[0].DayOfWeek)

	slot := slots[0]
	slot.EndTime = model.MustTimeOfDay(13, 0)
	require.NoError(t, repo.ReplaceSlot(ctx, slot))

	got, err := repo.GetSlot(ctx, morning)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.MustTimeOfDay(13, 0), got.EndTime)

	slot.ID = "missing-" + uuid.NewString()
	assert.ErrorIs(t, repo.ReplaceSlot(ctx, slot), model.ErrSlotNotFound)

	require.NoError(t, repo.RemoveSlot(ctx, morning))
	require.NoError(t, repo.RemoveSlot(ctx, morning))
	got, err = repo.GetSlot(ctx, morning)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repo := repository.NewSessionRepository(pool)
	trainerID := "t-" + uuid.NewString()
	memberID := "m-" + uuid.NewString()

	session := model.Session{
		ID:              uuid.NewString(),
		TrainerID:       trainerID,
		TrainerName:     "Anna Petrova",
		MemberID:        memberID,
		MemberName:      "Olga",
		SessionType:     "yoga",
		SessionDate:     monday().Add(15 * time.Hour),
		StartTime:       model.MustTimeOfDay(10, 0),
		DurationMinutes: 60,
		Status:          model.SessionStatusScheduled,
	}
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, monday().Equal(got.SessionDate))
	assert.Equal(t, model.MustTimeOfDay(10, 0), got.StartTime)
	assert.Equal(t, model.SessionStatusScheduled, got.Status)

	session.Status = model.SessionStatusCancelled
	session.CancellationReason = "sick"
	require.NoError(t, repo.Save(ctx, session))

	byTrainer, err := repo.FindByTrainerAndDate(ctx, trainerID, monday())
	require.NoError(t, err)
	require.Len(t, byTrainer, 1)
	assert.Equal(t, model.SessionStatusCancelled, byTrainer[0].Status)
	assert.Equal(t, "sick", byTrainer[0].CancellationReason)

	byMember, err := repo.FindByMemberAndDate(ctx, memberID, monday())
	require.NoError(t, err)
	assert.Len(t, byMember, 1)

	require.NoError(t, repo.Delete(ctx, session.ID))
	got, err = repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTrainerRepository(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repo := repository.NewTrainerRepository(pool)
	trainerID := "t-" + uuid.NewString()

	got, err := repo.Lookup(ctx, trainerID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Upsert(ctx, model.Trainer{ID: trainerID, Name: "Anna"}))
	require.NoError(t, repo.Upsert(ctx, model.Trainer{ID: trainerID, Name: "Anna Petrova", Status: model.TrainerStatusInactive}))

	got, err = repo.Lookup(ctx, trainerID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Anna Petrova", got.Name)
	assert.False(t, got.IsActive())
}

func TestSchedulingOverPostgres(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()

	trainers := repository.NewTrainerRepository(pool)
	trainerID := "t-" + uuid.NewString()
	require.NoError(t, trainers.Upsert(ctx, model.Trainer{ID: trainerID, Name: "Anna Petrova"}))

	scheduler := service.NewSchedulingService(
		repository.NewAvailabilityRepository(pool, idgen.UUID{}),
		repository.NewSessionRepository(pool),
		trainers,
		lock.NewLocal(),
		idgen.UUID{},
		zap.NewNop(),
	)

	_, err := scheduler.AddShift(ctx, trainerID, time.Monday, model.MustTimeOfDay(9, 0), model.MustTimeOfDay(12, 0))
	require.NoError(t, err)

	req := service.ScheduleRequest{
		MemberID:        "m-" + uuid.NewString(),
		MemberName:      "Olga",
		TrainerID:       trainerID,
		SessionType:     "personal",
		Date:            monday(),
		StartTime:       model.MustTimeOfDay(10, 0),
		DurationMinutes: 60,
	}
	session, err := scheduler.ScheduleSession(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Anna Petrova", session.TrainerName)

	req.StartTime = model.MustTimeOfDay(10, 30)
	_, err = scheduler.ScheduleSession(ctx, req)
	assert.ErrorIs(t, err, service.ErrSchedulingConflict)

	require.NoError(t, scheduler.CancelSession(ctx, session.ID, ""))
	_, err = scheduler.ScheduleSession(ctx, req)
	assert.NoError(t, err)
}
