package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/trainer_scheduler/internal/model"
	"github.com/Freeeeeet/trainer_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionColumns = `id, trainer_id, trainer_name, member_id, member_name, session_type,
	session_date, start_minute, duration_minutes, status, notes, cancellation_reason,
	created_at, updated_at`

const sessionOrder = ` ORDER BY session_date, start_minute, id`

// SessionRepository тренировки в PostgreSQL
type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

// Save вставляет тренировку или обновляет существующую с тем же ID
func (r *SessionRepository) Save(ctx context.Context, session model.Session) error {
	query := `
		INSERT INTO training_sessions (
			id, trainer_id, trainer_name, member_id, member_name, session_type,
			session_date, start_minute, duration_minutes, status, notes, cancellation_reason,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			trainer_id = EXCLUDED.trainer_id,
			trainer_name = EXCLUDED.trainer_name,
			member_id = EXCLUDED.member_id,
			member_name = EXCLUDED.member_name,
			session_type = EXCLUDED.session_type,
			session_date = EXCLUDED.session_date,
			start_minute = EXCLUDED.start_minute,
			duration_minutes = EXCLUDED.duration_minutes,
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			cancellation_reason = EXCLUDED.cancellation_reason,
			updated_at = EXCLUDED.updated_at
	`

	createdAt, updatedAt := session.CreatedAt, session.UpdatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err := r.Pool().Exec(ctx, query,
		session.ID,
		session.TrainerID,
		session.TrainerName,
		session.MemberID,
		session.MemberName,
		session.SessionType,
		model.DateOf(session.SessionDate),
		int(session.StartTime),
		session.DurationMinutes,
		string(session.Status),
		session.Notes,
		session.CancellationReason,
		createdAt,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// FindAll получает все тренировки
func (r *SessionRepository) FindAll(ctx context.Context) ([]model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM training_sessions` + sessionOrder
	return r.list(ctx, "find all sessions", query)
}

// FindByID получает тренировку по ID
func (r *SessionRepository) FindByID(ctx context.Context, sessionID string) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM training_sessions WHERE id = $1`

	session, err := scanSession(r.QueryRow(ctx, query, sessionID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by id: %w", err)
	}

	return &session, nil
}

// FindByTrainerAndDate получает тренировки тренера на дату во всех статусах
func (r *SessionRepository) FindByTrainerAndDate(ctx context.Context, trainerID string, date time.Time) ([]model.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM training_sessions
		WHERE trainer_id = $1 AND session_date = $2` + sessionOrder

	return r.list(ctx, "find sessions by trainer and date", query, trainerID, model.DateOf(date))
}

// FindByMemberAndDate получает тренировки клиента на дату
func (r *SessionRepository) FindByMemberAndDate(ctx context.Context, memberID string, date time.Time) ([]model.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM training_sessions
		WHERE member_id = $1 AND session_date = $2` + sessionOrder

	return r.list(ctx, "find sessions by member and date", query, memberID, model.DateOf(date))
}

// Delete удаляет тренировку
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	query := `DELETE FROM training_sessions WHERE id = $1`

	if _, err := r.Pool().Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (r *SessionRepository) list(ctx context.Context, op, query string, args ...any) ([]model.Session, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sessions, err := base.CollectRows(rows, scanSession)
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}

	return sessions, nil
}

func scanSession(row pgx.Row) (model.Session, error) {
	var (
		s      model.Session
		start  int
		status string
	)

	err := row.Scan(
		&s.ID,
		&s.TrainerID,
		&s.TrainerName,
		&s.MemberID,
		&s.MemberName,
		&s.SessionType,
		&s.SessionDate,
		&start,
		&s.DurationMinutes,
		&status,
		&s.Notes,
		&s.CancellationReason,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return model.Session{}, err
	}

	s.SessionDate = model.DateOf(s.SessionDate)
	s.StartTime = model.TimeOfDay(start)
	s.Status = model.SessionStatus(status)

	return s, nil
}
