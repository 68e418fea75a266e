package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// снимаем блокировку только если она всё ещё наша
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// продлеваем TTL только своей блокировки
var refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisOptions настройки распределённой блокировки
type RedisOptions struct {
	Prefix     string
	TTL        time.Duration
	RetryDelay time.Duration
}

// Redis блокировка по ключу, общая для нескольких инстансов бота.
//
// Пока блокировка удерживается, её TTL продлевается каждые TTL/3. Если продлить
// не удалось (Redis недоступен дольше TTL или ключ истёк), блокировка может
// достаться другому инстансу до вызова unlock: это логируется как Warn, но
// работа под блокировкой не прерывается
type Redis struct {
	client *redis.Client
	opts   RedisOptions
	logger *zap.Logger
}

func NewRedis(client *redis.Client, opts RedisOptions, logger *zap.Logger) *Redis {
	if opts.Prefix == "" {
		opts.Prefix = "trainer_lock:"
	}
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Second
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 25 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{client: client, opts: opts, logger: logger}
}

// NewRedisClient создаёт клиента и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// Key ключ блокировки в Redis
func (r *Redis) Key(name string) string {
	return r.opts.Prefix + name
}

// Lock повторяет SET NX до успеха или отмены ctx
func (r *Redis) Lock(ctx context.Context, name string) (func(), error) {
	key := r.Key(name)
	token := uuid.NewString()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.opts.TTL).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, waitCancelled(ctx, name)
			}
			return nil, fmt.Errorf("acquire lock %s: %w", name, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, waitCancelled(ctx, name)
		case <-time.After(r.opts.RetryDelay):
		}
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go r.keepAlive(key, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			r.release(key, token)
		})
	}, nil
}

// keepAlive продлевает TTL, пока не закрыт stop или пока ключ наш
func (r *Redis) keepAlive(key, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.opts.TTL / 3)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), r.opts.TTL/3)
		extended, err := refreshScript.Run(ctx, r.client, []string{key}, token, r.opts.TTL.Milliseconds()).Int()
		cancel()

		if err != nil {
			r.logger.Warn("Failed to refresh trainer lock",
				zap.String("key", key),
				zap.Error(err))
			continue
		}
		if extended == 0 {
			r.logger.Warn("Trainer lock lost before unlock", zap.String("key", key))
			return
		}
	}
}

func (r *Redis) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, r.client, []string{key}, token).Err(); err != nil {
		r.logger.Error("Failed to release trainer lock",
			zap.String("key", key),
			zap.Error(err))
	}
}
