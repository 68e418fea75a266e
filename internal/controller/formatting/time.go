package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/trainer_scheduler/internal/model"
)

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday дата с коротким днём недели: "19.10.2026 (Пн)"
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s (%s)", FormatDate(t), GetWeekdayShortName(t.Weekday()))
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end model.TimeOfDay) string {
	return fmt.Sprintf("%s-%s", start, end)
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

var weekdayNames = [...]string{
	"Воскресенье",
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
}

var weekdayShortNames = [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(day time.Weekday) string {
	if day >= 0 && int(day) < len(weekdayNames) {
		return weekdayNames[day]
	}
	return "Неизвестно"
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(day time.Weekday) string {
	if day >= 0 && int(day) < len(weekdayShortNames) {
		return weekdayShortNames[day]
	}
	return "?"
}
