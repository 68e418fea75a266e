package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Freeeeeet/trainer_scheduler/internal/model"
)

// SessionStore тренировки в памяти процесса. Наружу отдаются только копии
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session // sessionID -> session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]model.Session),
	}
}

// Save вставляет новую тренировку или заменяет существующую с тем же ID
func (s *SessionStore) Save(_ context.Context, session model.Session) error {
	session.SessionDate = model.DateOf(session.SessionDate)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
	return nil
}

func (s *SessionStore) FindAll(_ context.Context) ([]model.Session, error) {
	return s.filter(func(model.Session) bool { return true }), nil
}

func (s *SessionStore) FindByID(_ context.Context, sessionID string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *SessionStore) FindByTrainerAndDate(_ context.Context, trainerID string, date time.Time) ([]model.Session, error) {
	key := model.DateKey(date)
	return s.filter(func(session model.Session) bool {
		return session.TrainerID == trainerID && model.DateKey(session.SessionDate) == key
	}), nil
}

func (s *SessionStore) FindByMemberAndDate(_ context.Context, memberID string, date time.Time) ([]model.Session, error) {
	key := model.DateKey(date)
	return s.filter(func(session model.Session) bool {
		return session.MemberID == memberID && model.DateKey(session.SessionDate) == key
	}), nil
}

// Delete жёсткое удаление, отмена сюда не ходит
func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

func (s *SessionStore) filter(match func(model.Session) bool) []model.Session {
	s.mu.RLock()
	var sessions []model.Session
	for _, session := range s.sessions {
		if match(session) {
			sessions = append(sessions, session)
		}
	}
	s.mu.RUnlock()

	SortSessions(sessions)
	return sessions
}

// SortSessions порядок: дата, начало, ID
func SortSessions(sessions []model.Session) {
	slices.SortFunc(sessions, func(a, b model.Session) int {
		return cmp.Or(
			a.SessionDate.Compare(b.SessionDate),
			cmp.Compare(a.StartTime, b.StartTime),
			cmp.Compare(a.ID, b.ID),
		)
	})
}
