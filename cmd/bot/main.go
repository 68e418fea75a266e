package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/trainer_scheduler/internal/app"
	"github.com/Freeeeeet/trainer_scheduler/internal/config"
	"github.com/Freeeeeet/trainer_scheduler/internal/controller"
	"github.com/Freeeeeet/trainer_scheduler/internal/idgen"
	"github.com/Freeeeeet/trainer_scheduler/internal/lock"
	"github.com/Freeeeeet/trainer_scheduler/internal/repository"
	"github.com/Freeeeeet/trainer_scheduler/internal/repository/memory"
	"github.com/Freeeeeet/trainer_scheduler/internal/service"
	"github.com/Freeeeeet/trainer_scheduler/migrations"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Trainer scheduler stopped with error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Trainer scheduler stopped")
}

type stores struct {
	slots    service.AvailabilityStore
	sessions service.SessionStore
	trainers service.TrainerDirectory
	close    func()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting trainer scheduler",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.Storage),
		zap.String("locker", cfg.Locker),
		zap.String("id_scheme", cfg.IDScheme),
		zap.Int("token_length", len(cfg.TelegramToken)))

	if cfg.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN is not set")
	}

	ids, err := idgen.FromScheme(cfg.IDScheme)
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, ids, logger)
	if err != nil {
		return err
	}
	defer st.close()

	locker, stopLocker, err := openLocker(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stopLocker()

	var opts []service.Option
	if cfg.StrictCancel {
		opts = append(opts, service.WithStrictCancellation())
	}
	scheduler := service.NewSchedulingService(st.slots, st.sessions, st.trainers, locker, ids, logger, opts...)

	if len(cfg.Admins) == 0 {
		logger.Warn("ADMINS is empty, shift management commands are disabled")
	}

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	botController := controller.NewBotController(b, scheduler, cfg.Admins, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично, бот работает и без него
		logger.Warn("Failed to register bot commands menu", zap.Error(err))
	}

	return botController.Start(ctx)
}

// openStores выбирает хранилище: PostgreSQL или память
func openStores(ctx context.Context, cfg *config.Config, ids idgen.Generator, logger *zap.Logger) (*stores, error) {
	trainers, err := memory.ParseTrainers(cfg.Trainers)
	if err != nil {
		return nil, err
	}

	if cfg.Storage == config.StorageMemory {
		logger.Warn("Using in-memory storage, data is lost on restart",
			zap.Int("trainers", len(trainers)))
		return &stores{
			slots:    memory.NewAvailabilityStore(ids),
			sessions: memory.NewSessionStore(),
			trainers: memory.NewTrainerDirectory(trainers...),
			close:    func() {},
		}, nil
	}

	pool, err := app.NewPool(ctx, cfg.GetDBDSN(), logger)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		migrator, err := app.NewMigrator(pool, migrations.FS, ".", logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
		err = migrator.Run(ctx)
		if closeErr := migrator.Close(); closeErr != nil {
			logger.Warn("Failed to close migrator", zap.Error(closeErr))
		}
		if err != nil {
			pool.Close()
			return nil, err
		}
	}

	trainerRepo := repository.NewTrainerRepository(pool)
	for _, t := range trainers {
		if err := trainerRepo.Upsert(ctx, t); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return &stores{
		slots:    repository.NewAvailabilityRepository(pool, ids),
		sessions: repository.NewSessionRepository(pool),
		trainers: trainerRepo,
		close:    pool.Close,
	}, nil
}

// openLocker выбирает блокировку тренера: в процессе или через Redis
func openLocker(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.TrainerLocker, func(), error) {
	if cfg.Locker == config.LockerRedis {
		client, err := lock.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("✅ Redis locker connected", zap.String("addr", cfg.RedisAddr))

		locker := lock.NewRedis(client, lock.RedisOptions{TTL: cfg.LockTTL}, logger)
		return locker, func() {
			if err := client.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}, nil
	}

	locker := lock.NewLocal()
	sweeper := app.NewScheduler(locker, cfg.LockSweepInterval, cfg.LockSweepInterval, logger)
	sweeper.Start(ctx)

	return locker, sweeper.Stop, nil
}
