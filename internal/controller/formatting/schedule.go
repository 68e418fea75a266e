package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/trainer_scheduler/internal/model"
)

// FormatShifts список смен тренера по дням недели
func FormatShifts(trainerID string, shifts []model.AvailabilitySlot) string {
	if len(shifts) == 0 {
		return fmt.Sprintf("🗓 У тренера %s нет смен.\n\nДобавить: /addshift %s <день> <ЧЧ:ММ> <ЧЧ:ММ>", trainerID, trainerID)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 Смены тренера %s (%d %s):\n", trainerID, len(shifts), PluralizeShifts(len(shifts)))

	for _, shift := range shifts {
		fmt.Fprintf(&sb, "\n%s %s\n   🆔 %s",
			GetWeekdayShortName(shift.DayOfWeek),
			FormatTimeRange(shift.StartTime, shift.EndTime),
			shift.ID,
		)
	}

	return sb.String()
}

// FormatSession карточка тренировки
func FormatSession(session model.Session) string {
	display := GetSessionStatusDisplay(session.Status)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s, %s\n", display.Emoji, FormatDateWithWeekday(session.SessionDate), FormatTimeRange(session.StartTime, session.EndTime()))
	fmt.Fprintf(&sb, "👤 Тренер: %s\n", session.TrainerName)
	fmt.Fprintf(&sb, "🏋️ Тип: %s, %s\n", session.SessionType, FormatDuration(session.DurationMinutes))
	fmt.Fprintf(&sb, "📊 Статус: %s\n", display.Text)
	if session.CancellationReason != "" {
		fmt.Fprintf(&sb, "💬 Причина отмены: %s\n", session.CancellationReason)
	}
	fmt.Fprintf(&sb, "🆔 %s", session.ID)

	return sb.String()
}

// FormatSessions список тренировок клиента
func FormatSessions(sessions []model.Session) string {
	if len(sessions) == 0 {
		return "📅 У вас пока нет тренировок.\n\nЗаписаться: /book <тренер> <ГГГГ-ММ-ДД> <ЧЧ:ММ> <минуты>"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 У вас %d %s:", len(sessions), PluralizeSessions(len(sessions)))
	for _, session := range sessions {
		sb.WriteString("\n\n")
		sb.WriteString(FormatSession(session))
	}

	return sb.String()
}

// FormatStartTimes варианты начала для /suggest
func FormatStartTimes(times []model.TimeOfDay) string {
	if len(times) == 0 {
		return "😔 Свободного времени на эту дату нет."
	}

	parts := make([]string, 0, len(times))
	for _, t := range times {
		parts = append(parts, t.String())
	}

	return "🕐 Можно начать в: " + strings.Join(parts, ", ")
}
