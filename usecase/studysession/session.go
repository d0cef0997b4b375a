// Package studysession owns the study-session lifecycle: sessions begin
// running and transition exactly once to stopped, with minutes computed
// server-side at stop time and immutable afterward.
package studysession

import (
	"context"

	"go.uber.org/zap"

	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/internal/clock"
	"github.com/studyzen/backend/repository"
)

type UseCase struct {
	sessions repository.StudySessionRepository
	tasks    repository.TaskRepository
	topics   repository.TopicRepository
	clock    clock.Clock
	logger   *zap.Logger
}

func New(
	sessions repository.StudySessionRepository,
	tasks repository.TaskRepository,
	topics repository.TopicRepository,
	clk clock.Clock,
	logger *zap.Logger,
) *UseCase {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		sessions: sessions,
		tasks:    tasks,
		topics:   topics,
		clock:    clk,
		logger:   logger,
	}
}

// StartInput references the work being studied. At least one of TaskID or
// TopicID must resolve to an entity owned by the caller.
type StartInput struct {
	TaskID  string
	TopicID string
	Notes   string
}

// Start creates a session in the running state (ended_at unset, zero minutes).
func (uc *UseCase) Start(ctx context.Context, ownerID string, input StartInput) (*domain.StudySession, error) {
	if input.TaskID == "" && input.TopicID == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "either task or topic reference is required")
	}

	session := &domain.StudySession{
		UserID:    ownerID,
		StartedAt: uc.clock.Now(),
		Notes:     input.Notes,
	}

	if input.TaskID != "" {
		task, err := uc.tasks.GetByID(ctx, input.TaskID, ownerID)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInvalid, "task reference does not resolve", err)
		}
		session.TaskID = &task.ID
		// A task-only start still ties the session to the task's topic so
		// topic-level recency sees the activity.
		if input.TopicID == "" {
			session.TopicID = &task.TopicID
		}
	}
	if input.TopicID != "" {
		topic, err := uc.topics.GetByID(ctx, input.TopicID, ownerID)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInvalid, "topic reference does not resolve", err)
		}
		session.TopicID = &topic.ID
	}

	created, err := uc.sessions.Create(ctx, session)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("study session started",
		zap.String("session_id", created.ID),
		zap.String("owner_id", ownerID))
	return created, nil
}

// Stop ends a running session: ended_at is set to the current time and
// minutes are fixed from the elapsed span. The repository applies the
// transition conditionally, so a concurrent or repeated stop surfaces as a
// conflict instead of a recompute.
func (uc *UseCase) Stop(ctx context.Context, ownerID, sessionID string) (*domain.StudySession, error) {
	session, err := uc.sessions.GetByID(ctx, sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	if !session.Running() {
		return nil, domain.ErrSessionAlreadyStopped
	}

	endedAt := uc.clock.Now()
	minutes := domain.ElapsedMinutes(session.StartedAt, endedAt)

	stopped, err := uc.sessions.Stop(ctx, sessionID, ownerID, endedAt, minutes)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("study session stopped",
		zap.String("session_id", stopped.ID),
		zap.String("owner_id", ownerID),
		zap.Int("minutes", stopped.Minutes))
	return stopped, nil
}

// List returns the caller's sessions, optionally filtered by topic, task or
// start-time range.
func (uc *UseCase) List(ctx context.Context, filter repository.StudySessionFilter) ([]domain.StudySession, error) {
	return uc.sessions.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, ownerID, sessionID string) (*domain.StudySession, error) {
	return uc.sessions.GetByID(ctx, sessionID, ownerID)
}

func (uc *UseCase) Delete(ctx context.Context, ownerID, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID, ownerID)
}
