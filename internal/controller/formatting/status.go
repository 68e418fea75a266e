package formatting

import "github.com/Freeeeeet/trainer_scheduler/internal/model"

// SessionStatusDisplay представляет отображение статуса тренировки
type SessionStatusDisplay struct {
	Emoji string
	Text  string
}

// GetSessionStatusDisplay возвращает emoji и текст для статуса тренировки
func GetSessionStatusDisplay(status model.SessionStatus) SessionStatusDisplay {
	displays := map[model.SessionStatus]SessionStatusDisplay{
		model.SessionStatusScheduled: {"✅", "Запланирована"},
		model.SessionStatusCompleted: {"✔️", "Проведена"},
		model.SessionStatusCancelled: {"❌", "Отменена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return SessionStatusDisplay{"❓", "Неизвестно"}
}
