package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/repository"
)

type studySessionRepository struct {
	pool *pgxpool.Pool
}

// NewStudySessionRepository returns a Postgres-backed StudySessionRepository.
func NewStudySessionRepository(pool *pgxpool.Pool) repository.StudySessionRepository {
	return &studySessionRepository{pool: pool}
}

func (r *studySessionRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.StudySession, error) {
	const query = `
	SELECT id, user_id, topic_id, task_id, started_at, ended_at, minutes, notes
	FROM study_sessions
	WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, ownerID)
	return scanStudySession(row)
}

func (r *studySessionRepository) List(ctx context.Context, filter repository.StudySessionFilter) ([]domain.StudySession, error) {
	const query = `
	SELECT id, user_id, topic_id, task_id, started_at, ended_at, minutes, notes
	FROM study_sessions
	WHERE user_id = $1
	  AND ($2 = '' OR topic_id = $2)
	  AND ($3 = '' OR task_id = $3)
	  AND (NOT $4 OR ended_at IS NOT NULL)
	  AND ($5::timestamptz IS NULL OR started_at >= $5)
	  AND ($6::timestamptz IS NULL OR started_at < $6)
	ORDER BY started_at DESC
	LIMIT $7 OFFSET $8
	`
	rows, err := r.pool.Query(ctx, query,
		filter.OwnerID,
		filter.TopicID,
		filter.TaskID,
		filter.StoppedOnly,
		nullTime(filter.StartedAfter),
		nullTime(filter.StartedBefore),
		clampSessionLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.StudySession
	for rows.Next() {
		session, err := scanStudySession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

func (r *studySessionRepository) Create(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error) {
	if session == nil {
		return nil, domain.ErrInvalidPayload
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO study_sessions (id, user_id, topic_id, task_id, started_at, minutes, notes)
	VALUES ($1, $2, $3, $4, $5, 0, $6)
	RETURNING started_at
	`
	if err := r.pool.QueryRow(ctx, query,
		session.ID,
		session.UserID,
		session.TopicID,
		session.TaskID,
		session.StartedAt,
		session.Notes,
	).Scan(&session.StartedAt); err != nil {
		return nil, err
	}
	session.Minutes = 0
	session.EndedAt = nil
	return session, nil
}

// Stop flips a running session to stopped exactly once. The WHERE clause on
// ended_at makes concurrent stops race on a single conditional update; the
// loser sees zero rows and gets a conflict, never a recompute.
func (r *studySessionRepository) Stop(ctx context.Context, id, ownerID string, endedAt time.Time, minutes int) (*domain.StudySession, error) {
	const query = `
	UPDATE study_sessions
	SET ended_at = $3,
		minutes = $4
	WHERE id = $1 AND user_id = $2 AND ended_at IS NULL
	RETURNING id, user_id, topic_id, task_id, started_at, ended_at, minutes, notes
	`
	row := r.pool.QueryRow(ctx, query, id, ownerID, endedAt, minutes)
	session, err := scanStudySession(row)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}

	// Distinguish "never existed / not owned" from "already stopped".
	existing, getErr := r.GetByID(ctx, id, ownerID)
	if getErr != nil {
		return nil, getErr
	}
	if !existing.Running() {
		return nil, domain.ErrSessionAlreadyStopped
	}
	return nil, domain.ErrSessionNotFound
}

func (r *studySessionRepository) Delete(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM study_sessions WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func scanStudySession(row scannable) (*domain.StudySession, error) {
	var session domain.StudySession
	if err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.TopicID,
		&session.TaskID,
		&session.StartedAt,
		&session.EndedAt,
		&session.Minutes,
		&session.Notes,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// clampSessionLimit allows unbounded listings: analytics pulls a user's whole
// session history to compute streaks, so zero means no LIMIT cap here.
func clampSessionLimit(limit int) interface{} {
	if limit <= 0 {
		return nil
	}
	return limit
}
