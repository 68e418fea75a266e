package model

import "time"

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled" // Запланирована
	SessionStatusCompleted SessionStatus = "completed" // Проведена (выставляется снаружи)
	SessionStatusCancelled SessionStatus = "cancelled" // Отменена
)

// IsTerminal из Completed и Cancelled переходов нет
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusCancelled
}

// Session забронированная тренировка
type Session struct {
	ID              string        `json:"id"`
	TrainerID       string        `json:"trainer_id"`
	TrainerName     string        `json:"trainer_name"` // снимок на момент записи
	MemberID        string        `json:"member_id"`
	MemberName      string        `json:"member_name"` // снимок на момент записи
	SessionType     string        `json:"session_type"`
	SessionDate     time.Time     `json:"session_date"` // только дата
	StartTime       TimeOfDay     `json:"start_time"`
	DurationMinutes int           `json:"duration_minutes"`
	Status          SessionStatus `json:"status"`
	Notes           string        `json:"notes"`

	CancellationReason string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// EndTime время окончания тренировки
func (s Session) EndTime() TimeOfDay {
	return s.StartTime.Add(s.DurationMinutes)
}

// IsActive отменённые тренировки не занимают время тренера
func (s Session) IsActive() bool {
	return s.Status != SessionStatusCancelled
}

// Overlaps проверка пересечения полуинтервалов [start, end).
// Касание границ пересечением не считается
func (s Session) Overlaps(start, end TimeOfDay) bool {
	return start < s.EndTime() && end > s.StartTime
}
