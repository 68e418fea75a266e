package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const nanoAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Generator выдаёт новые уникальные идентификаторы
type Generator interface {
	NewID() string
}

// UUID генератор по умолчанию
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// NanoID короткие идентификаторы, удобные для набора руками в командах бота
type NanoID struct {
	Size int
}

func (g NanoID) NewID() string {
	size := g.Size
	if size <= 0 {
		size = 12
	}
	id, err := gonanoid.Generate(nanoAlphabet, size)
	if err != nil {
		// crypto/rand не отвечает, uniqueness важнее формата
		return uuid.NewString()
	}
	return id
}

// Sequence детерминированная последовательность prefix-1, prefix-2, ... для тестов
type Sequence struct {
	Prefix string
	n      atomic.Int64
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

func (g *Sequence) NewID() string {
	return fmt.Sprintf("%s-%d", g.Prefix, g.n.Add(1))
}

// FromScheme выбирает генератор по названию из конфига
func FromScheme(scheme string) (Generator, error) {
	switch scheme {
	case "", "uuid":
		return UUID{}, nil
	case "nanoid":
		return NanoID{}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q", scheme)
	}
}
