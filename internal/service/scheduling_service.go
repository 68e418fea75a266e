package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Freeeeeet/trainer_scheduler/internal/idgen"
	"github.com/Freeeeeet/trainer_scheduler/internal/model"
	"go.uber.org/zap"
)

// SchedulingService единственное место с правилами записи: проверяет смены,
// ищет пересечения, создаёт и отменяет тренировки. Только он меняет Session.Status
type SchedulingService struct {
	slots    AvailabilityStore
	sessions SessionStore
	trainers TrainerDirectory
	locker   TrainerLocker
	ids      idgen.Generator
	logger   *zap.Logger

	strictCancel bool
	now          func() time.Time
}

// Option настройка SchedulingService
type Option func(*SchedulingService)

// WithStrictCancellation отмена несуществующей или уже отменённой тренировки
// возвращает ошибку вместо молчаливого no-op
func WithStrictCancellation() Option {
	return func(s *SchedulingService) { s.strictCancel = true }
}

// WithClock подменяет источник времени для CreatedAt/UpdatedAt
func WithClock(now func() time.Time) Option {
	return func(s *SchedulingService) { s.now = now }
}

func NewSchedulingService(
	slots AvailabilityStore,
	sessions SessionStore,
	trainers TrainerDirectory,
	locker TrainerLocker,
	ids idgen.Generator,
	logger *zap.Logger,
	opts ...Option,
) *SchedulingService {
	s := &SchedulingService{
		slots:    slots,
		sessions: sessions,
		trainers: trainers,
		locker:   locker,
		ids:      ids,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScheduleRequest параметры записи на тренировку
type ScheduleRequest struct {
	MemberID        string
	MemberName      string
	TrainerID       string
	SessionType     string
	Date            time.Time
	StartTime       model.TimeOfDay
	DurationMinutes int
	Notes           string
}

// IsSlotAvailable проверяет что тренер работает в это время и ещё не занят
func (s *SchedulingService) IsSlotAvailable(ctx context.Context, trainerID string, date time.Time, start model.TimeOfDay, durationMinutes int) (bool, error) {
	conflict, err := s.findConflict(ctx, trainerID, date, start, durationMinutes)
	if err != nil {
		return false, err
	}
	return conflict == nil, nil
}

// findConflict возвращает nil если время свободно
func (s *SchedulingService) findConflict(ctx context.Context, trainerID string, date time.Time, start model.TimeOfDay, durationMinutes int) (*ConflictError, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}

	date = model.DateOf(date)
	requestedEnd := start.Add(durationMinutes)

	// Запрос должен целиком помещаться в одну смену, склейка соседних смен не считается
	shifts, err := s.slots.ListByTrainerAndDay(ctx, trainerID, date.Weekday())
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}

	covered := slices.ContainsFunc(shifts, func(slot model.AvailabilitySlot) bool {
		return slot.Covers(start, requestedEnd)
	})
	if !covered {
		return &ConflictError{Reason: ConflictOutsideShift, TrainerID: trainerID}, nil
	}

	existing, err := s.sessions.FindByTrainerAndDate(ctx, trainerID, date)
	if err != nil {
		return nil, fmt.Errorf("find trainer sessions: %w", err)
	}

	for _, session := range existing {
		if !session.IsActive() {
			continue
		}
		if session.Overlaps(start, requestedEnd) {
			return &ConflictError{
				Reason:               ConflictOverlap,
				TrainerID:            trainerID,
				ConflictingSessionID: session.ID,
			}, nil
		}
	}

	return nil, nil
}

// ScheduleSession записывает клиента к тренеру. Проверка и сохранение идут
// под блокировкой тренера, так что две параллельные записи не пересекутся
func (s *SchedulingService) ScheduleSession(ctx context.Context, req ScheduleRequest) (*model.Session, error) {
	unlock, err := s.locker.Lock(ctx, req.TrainerID)
	if err != nil {
		return nil, fmt.Errorf("lock trainer %s: %w", req.TrainerID, err)
	}
	defer unlock()

	date := model.DateOf(req.Date)

	conflict, err := s.findConflict(ctx, req.TrainerID, date, req.StartTime, req.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		s.logger.Info("Scheduling conflict",
			zap.String("trainer_id", req.TrainerID),
			zap.String("member_id", req.MemberID),
			zap.String("date", model.DateKey(date)),
			zap.String("start_time", req.StartTime.String()),
			zap.Int("duration_minutes", req.DurationMinutes),
			zap.String("reason", string(conflict.Reason)),
			zap.String("conflicting_session_id", conflict.ConflictingSessionID),
		)
		return nil, conflict
	}

	trainer, err := s.trainers.Lookup(ctx, req.TrainerID)
	if err != nil {
		return nil, fmt.Errorf("lookup trainer: %w", err)
	}
	if trainer == nil {
		return nil, fmt.Errorf("%w: %s", ErrTrainerNotFound, req.TrainerID)
	}
	if !trainer.IsActive() {
		s.logger.Warn("Booking for inactive trainer",
			zap.String("trainer_id", trainer.ID),
			zap.String("status", string(trainer.Status)))
	}

	now := s.now()
	session := model.Session{
		ID:              s.ids.NewID(),
		TrainerID:       req.TrainerID,
		TrainerName:     trainer.Name,
		MemberID:        req.MemberID,
		MemberName:      req.MemberName,
		SessionType:     req.SessionType,
		SessionDate:     date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Status:          model.SessionStatusScheduled,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error("Failed to save session",
			zap.String("session_id", session.ID),
			zap.Error(err))
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("Session scheduled",
		zap.String("session_id", session.ID),
		zap.String("trainer_id", session.TrainerID),
		zap.String("member_id", session.MemberID),
		zap.String("date", model.DateKey(date)),
		zap.String("start_time", session.StartTime.String()),
		zap.Int("duration_minutes", session.DurationMinutes),
	)

	return &session, nil
}

// CancelSession переводит тренировку в Cancelled, её время снова свободно.
//
// По умолчанию отмена несуществующей или уже отменённой тренировки ничего не делает
// и возвращает nil. С WithStrictCancellation возвращаются ErrSessionNotFound,
// ErrAlreadyCancelled или ErrInvalidTransition (для Completed).
// reason сохраняется в CancellationReason
func (s *SchedulingService) CancelSession(ctx context.Context, sessionID, reason string) error {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return s.cancelNoop(sessionID, ErrSessionNotFound)
	}

	unlock, err := s.locker.Lock(ctx, session.TrainerID)
	if err != nil {
		return fmt.Errorf("lock trainer %s: %w", session.TrainerID, err)
	}
	defer unlock()

	// перечитываем под блокировкой, статус мог поменяться
	session, err = s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return s.cancelNoop(sessionID, ErrSessionNotFound)
	}

	switch session.Status {
	case model.SessionStatusCancelled:
		return s.cancelNoop(sessionID, ErrAlreadyCancelled)
	case model.SessionStatusCompleted:
		return s.cancelNoop(sessionID, ErrInvalidTransition)
	}

	session.Status = model.SessionStatusCancelled
	session.CancellationReason = reason
	session.UpdatedAt = s.now()

	if err := s.sessions.Save(ctx, *session); err != nil {
		s.logger.Error("Failed to save cancelled session",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("Session cancelled",
		zap.String("session_id", sessionID),
		zap.String("trainer_id", session.TrainerID),
		zap.String("member_id", session.MemberID),
		zap.String("reason", reason),
	)

	return nil
}

func (s *SchedulingService) cancelNoop(sessionID string, cause error) error {
	if s.strictCancel {
		return fmt.Errorf("cancel session %s: %w", sessionID, cause)
	}

	s.logger.Warn("Cancel ignored",
		zap.String("session_id", sessionID),
		zap.String("cause", cause.Error()))
	return nil
}

// GetSessionsForMember все тренировки клиента.
// Полный проход по всем тренировкам, на больших объёмах нужен индекс по member_id
func (s *SchedulingService) GetSessionsForMember(ctx context.Context, memberID string) ([]model.Session, error) {
	all, err := s.sessions.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find all sessions: %w", err)
	}

	var sessions []model.Session
	for _, session := range all {
		if session.MemberID == memberID {
			sessions = append(sessions, session)
		}
	}

	return sessions, nil
}

// GetMemberSessionsOn тренировки клиента на дату
func (s *SchedulingService) GetMemberSessionsOn(ctx context.Context, memberID string, date time.Time) ([]model.Session, error) {
	sessions, err := s.sessions.FindByMemberAndDate(ctx, memberID, model.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("find member sessions: %w", err)
	}
	return sessions, nil
}

// GetTrainerSessions тренировки тренера на дату, включая отменённые
func (s *SchedulingService) GetTrainerSessions(ctx context.Context, trainerID string, date time.Time) ([]model.Session, error) {
	sessions, err := s.sessions.FindByTrainerAndDate(ctx, trainerID, model.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("find trainer sessions: %w", err)
	}
	return sessions, nil
}

// GetSession получает тренировку по ID
func (s *SchedulingService) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return session, nil
}
