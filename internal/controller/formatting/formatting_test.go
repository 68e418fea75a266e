package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/trainer_scheduler/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPluralizeSessions(t *testing.T) {
	tests := map[int]string{
		1:  "тренировка",
		2:  "тренировки",
		5:  "тренировок",
		11: "тренировок",
		21: "тренировка",
		24: "тренировки",
	}
	for n, want := range tests {
		assert.Equal(t, want, PluralizeSessions(n), n)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 мин", FormatDuration(45))
	assert.Equal(t, "1 ч", FormatDuration(60))
	assert.Equal(t, "1 ч 30 мин", FormatDuration(90))
}

func TestFormatSession(t *testing.T) {
	session := model.Session{
		ID:                 "s-1",
		TrainerName:        "Anna Petrova",
		SessionType:        "yoga",
		SessionDate:        time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		StartTime:          model.MustTimeOfDay(10, 0),
		DurationMinutes:    60,
		Status:             model.SessionStatusCancelled,
		CancellationReason: "болею",
	}

	text := FormatSession(session)
	assert.Contains(t, text, "19.10.2026 (Пн)")
	assert.Contains(t, text, "10:00-11:00")
	assert.Contains(t, text, "Anna Petrova")
	assert.Contains(t, text, "Отменена")
	assert.Contains(t, text, "болею")
}

func TestFormatShifts(t *testing.T) {
	text := FormatShifts("t1", []model.AvailabilitySlot{{
		ID:        "slot-1",
		DayOfWeek: time.Monday,
		StartTime: model.MustTimeOfDay(9, 0),
		EndTime:   model.MustTimeOfDay(12, 0),
	}})
	assert.Contains(t, text, "1 смена")
	assert.Contains(t, text, "Пн 09:00-12:00")

	assert.Contains(t, FormatShifts("t1", nil), "нет смен")
}

func TestFormatStartTimes(t *testing.T) {
	assert.Equal(t, "🕐 Можно начать в: 09:00, 11:00",
		FormatStartTimes([]model.TimeOfDay{model.MustTimeOfDay(9, 0), model.MustTimeOfDay(11, 0)}))
	assert.Contains(t, FormatStartTimes(nil), "нет")
}
