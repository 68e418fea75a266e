package lock

import (
	"context"
	"errors"
	"fmt"
)

// ErrLockTimeout блокировку не удалось взять до отмены контекста.
// Ошибка оборачивает и ctx.Err(), так что errors.Is работает для обоих
var ErrLockTimeout = errors.New("lock wait cancelled")

func waitCancelled(ctx context.Context, key string) error {
	return fmt.Errorf("%w: %s: %w", ErrLockTimeout, key, ctx.Err())
}
