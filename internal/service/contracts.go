package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/trainer_scheduler/internal/model"
)

// AvailabilityStore хранит еженедельные смены тренеров. Бизнес-проверок не делает,
// кроме отказа сохранять смену с start >= end
type AvailabilityStore interface {
	AddSlot(ctx context.Context, trainerID string, day time.Weekday, start, end model.TimeOfDay) (string, error)
	ReplaceSlot(ctx context.Context, slot model.AvailabilitySlot) error
	// RemoveSlot идемпотентен: удаление несуществующей смены не ошибка
	RemoveSlot(ctx context.Context, slotID string) error
	GetSlot(ctx context.Context, slotID string) (*model.AvailabilitySlot, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]model.AvailabilitySlot, error)
	ListByTrainerAndDay(ctx context.Context, trainerID string, day time.Weekday) ([]model.AvailabilitySlot, error)
}

// SessionStore хранит тренировки. Save это upsert по ID
type SessionStore interface {
	Save(ctx context.Context, session model.Session) error
	FindAll(ctx context.Context) ([]model.Session, error)
	// FindByID возвращает nil, nil если тренировки нет
	FindByID(ctx context.Context, sessionID string) (*model.Session, error)
	// FindByTrainerAndDate возвращает тренировки во всех статусах
	FindByTrainerAndDate(ctx context.Context, trainerID string, date time.Time) ([]model.Session, error)
	FindByMemberAndDate(ctx context.Context, memberID string, date time.Time) ([]model.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// TrainerDirectory внешний справочник тренеров. nil, nil для неизвестного ID
type TrainerDirectory interface {
	Lookup(ctx context.Context, trainerID string) (*model.Trainer, error)
}

// TrainerLocker сериализует записи и отмены по одному тренеру
type TrainerLocker interface {
	Lock(ctx context.Context, trainerID string) (unlock func(), err error)
}
