package handlers

import (
	"github.com/Freeeeeet/trainer_scheduler/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	scheduler *service.SchedulingService
	admins    map[int64]struct{} // Telegram ID администраторов расписания
	logger    *zap.Logger
}

// NewHandlers создаёт новый обработчик команд.
// admins могут управлять сменами, пустой список запрещает это всем
func NewHandlers(scheduler *service.SchedulingService, admins []int64, logger *zap.Logger) *Handlers {
	set := make(map[int64]struct{}, len(admins))
	for _, id := range admins {
		set[id] = struct{}{}
	}

	return &Handlers{
		scheduler: scheduler,
		admins:    set,
		logger:    logger,
	}
}
