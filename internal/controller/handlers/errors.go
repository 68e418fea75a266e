package handlers

import (
	"errors"

	"github.com/Freeeeeet/trainer_scheduler/internal/service"
)

// UserMessage переводит ошибку сервиса в текст для пользователя
func UserMessage(err error) string {
	var conflict *service.ConflictError
	if errors.As(err, &conflict) {
		if conflict.Reason == service.ConflictOutsideShift {
			return "❌ Тренер не работает в это время. Посмотреть смены: /shifts " + conflict.TrainerID
		}
		return "❌ Это время уже занято. Подобрать свободное: /suggest " + conflict.TrainerID + " <ГГГГ-ММ-ДД> <минуты>"
	}

	switch {
	case errors.Is(err, errUsage):
		return "❌ Неверные аргументы команды. Справка: /help"
	case errors.Is(err, service.ErrTrainerNotFound):
		return "❌ Тренер не найден."
	case errors.Is(err, service.ErrSessionNotFound):
		return "❌ Тренировка не найдена."
	case errors.Is(err, service.ErrAlreadyCancelled):
		return "ℹ️ Тренировка уже отменена."
	case errors.Is(err, service.ErrInvalidTransition):
		return "❌ Проведённую тренировку нельзя отменить."
	case errors.Is(err, service.ErrInvalidTimeRange):
		return "❌ Неверный интервал: начало должно быть раньше конца, в пределах суток."
	case errors.Is(err, service.ErrSlotNotFound):
		return "❌ Смена не найдена."
	case errors.Is(err, service.ErrInvalidDuration):
		return "❌ Длительность должна быть больше нуля."
	}

	return "❌ Произошла ошибка. Попробуйте позже."
}

// isUserError ошибки, которые не нужно логировать как сбой
func isUserError(err error) bool {
	for _, target := range []error{
		errUsage,
		service.ErrSchedulingConflict,
		service.ErrTrainerNotFound,
		service.ErrSessionNotFound,
		service.ErrAlreadyCancelled,
		service.ErrInvalidTransition,
		service.ErrInvalidTimeRange,
		service.ErrSlotNotFound,
		service.ErrInvalidDuration,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
