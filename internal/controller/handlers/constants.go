package handlers

// Ограничения на аргументы команд
const (
	// Длительность тренировки (в минутах)
	SessionMinDuration = 15  // 15 минут
	SessionMaxDuration = 480 // 8 часов

	// Шаг сетки для /suggest
	SuggestStepMinutes = 30

	// Тип тренировки по умолчанию
	DefaultSessionType = "personal"

	// Причина отмены
	CancelReasonMaxLength = 200
)
