package repository

import (
	"context"
	"time"

	"github.com/studyzen/backend/domain"
)

type StudySessionFilter struct {
	OwnerID string
	TopicID string
	TaskID  string
	// StoppedOnly keeps finished sessions only, so running ones never skew
	// minute totals.
	StoppedOnly   bool
	StartedAfter  time.Time
	StartedBefore time.Time
	Limit         int
	Offset        int
}

type StudySessionRepository interface {
	GetByID(ctx context.Context, id, ownerID string) (*domain.StudySession, error)
	List(ctx context.Context, filter StudySessionFilter) ([]domain.StudySession, error)
	Create(ctx context.Context, session *domain.StudySession) (*domain.StudySession, error)
	// Stop applies the running→stopped transition as a single conditional
	// update. It fails with ErrSessionNotFound when no owned session has the
	// id, and ErrSessionAlreadyStopped when the session exists but its
	// ended_at is already set.
	Stop(ctx context.Context, id, ownerID string, endedAt time.Time, minutes int) (*domain.StudySession, error)
	Delete(ctx context.Context, id, ownerID string) error
}
