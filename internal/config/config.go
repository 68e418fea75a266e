package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	LockerLocal = "local"
	LockerRedis = "redis"
)

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN         string `mapstructure:"DB_DSN"`
	Environment   string `mapstructure:"ENV"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`

	Storage       string `mapstructure:"STORAGE"`
	RunMigrations bool   `mapstructure:"MIGRATIONS"`

	Locker            string        `mapstructure:"LOCKER"`
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int           `mapstructure:"REDIS_DB"`
	LockTTL           time.Duration `mapstructure:"LOCK_TTL"`
	LockSweepInterval time.Duration `mapstructure:"LOCK_SWEEP_INTERVAL"`

	IDScheme     string `mapstructure:"ID_SCHEME"`
	StrictCancel bool   `mapstructure:"STRICT_CANCEL"`
	Trainers     string `mapstructure:"TRAINERS"`

	// Telegram ID пользователей, которым доступны /addshift и /removeshift
	Admins []int64 `mapstructure:"ADMINS"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv читает конфиг из переменных окружения без .env
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Environment:   getEnv("ENV", "development"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		Storage:       os.Getenv("STORAGE"),
		Locker:        getEnv("LOCKER", LockerLocal),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		IDScheme:      getEnv("ID_SCHEME", "uuid"),
		Trainers:      os.Getenv("TRAINERS"),
	}

	var err error
	if cfg.RunMigrations, err = getBool("MIGRATIONS", true); err != nil {
		return nil, err
	}
	if cfg.StrictCancel, err = getBool("STRICT_CANCEL", false); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.LockTTL, err = getDuration("LOCK_TTL", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.LockSweepInterval, err = getDuration("LOCK_SWEEP_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Admins, err = getIDList("ADMINS"); err != nil {
		return nil, err
	}

	// Без DSN работаем в памяти
	if cfg.Storage == "" {
		cfg.Storage = StorageMemory
		if cfg.DBDSN != "" {
			cfg.Storage = StoragePostgres
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Config loaded: storage=%s locker=%s env=%s\n", cfg.Storage, cfg.Locker, cfg.Environment)

	return cfg, nil
}

// Validate проверяет обязательные поля для выбранных бэкендов
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required for %s storage", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Storage)
	}

	switch c.Locker {
	case LockerLocal:
	case LockerRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for %s locker", LockerRedis)
		}
	default:
		return fmt.Errorf("unknown LOCKER %q", c.Locker)
	}

	if c.LockSweepInterval <= 0 {
		return fmt.Errorf("LOCK_SWEEP_INTERVAL must be positive")
	}

	return nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

// getIDList разбирает список Telegram ID через запятую
func getIDList(key string) ([]int64, error) {
	var ids []int64
	for _, item := range strings.Split(os.Getenv(key), ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
