package lock

import (
	"context"
	"sync"
	"time"
)

// Local блокировки по ключу (ID тренера) внутри одного процесса.
// Операции по разным ключам друг друга не блокируют
type Local struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

type entry struct {
	sem      chan struct{}
	holders  int // держат или ждут блокировку
	lastUsed time.Time
}

func NewLocal() *Local {
	return &Local{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Lock захватывает блокировку ключа. Ожидание прерывается отменой ctx
func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.holders++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(e)
		return nil, waitCancelled(ctx, key)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(e)
		})
	}, nil
}

func (l *Local) release(e *entry) {
	l.mu.Lock()
	e.holders--
	e.lastUsed = l.now()
	l.mu.Unlock()
}

// Sweep удаляет записи, которые никто не держит дольше idleFor.
// Возвращает количество удалённых
func (l *Local) Sweep(idleFor time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idleFor)
	removed := 0
	for key, e := range l.entries {
		if e.holders == 0 && !e.lastUsed.After(cutoff) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

// Len количество ключей в реестре
func (l *Local) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
