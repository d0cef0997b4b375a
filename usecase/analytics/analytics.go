// Package analytics derives the per-user study views: the rolling activity
// summary (daily minute buckets, window total, streak) and the blueprint
// ranking of open tasks. It is read-only over the repositories and computes
// everything in memory, so results are cache-ready but never cached here.
package analytics

import (
	"context"

	"go.uber.org/zap"

	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/internal/clock"
	"github.com/studyzen/backend/repository"
)

const (
	// DefaultWindowDays is the summary window applied when the caller does
	// not specify one.
	DefaultWindowDays = 7
	// DefaultBlueprintLimit caps the blueprint when no limit is given.
	DefaultBlueprintLimit = 5
	// DefaultDueSoonLimit caps the due-soon list inside the summary.
	DefaultDueSoonLimit = 5
)

// Config tunes list caps. Zero values fall back to the defaults above.
type Config struct {
	DueSoonLimit int
}

type UseCase struct {
	sessions repository.StudySessionRepository
	tasks    repository.TaskRepository
	topics   repository.TopicRepository
	clock    clock.Clock
	logger   *zap.Logger
	cfg      Config
}

func New(
	sessions repository.StudySessionRepository,
	tasks repository.TaskRepository,
	topics repository.TopicRepository,
	clk clock.Clock,
	logger *zap.Logger,
	cfg Config,
) *UseCase {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DueSoonLimit <= 0 {
		cfg.DueSoonLimit = DefaultDueSoonLimit
	}
	return &UseCase{
		sessions: sessions,
		tasks:    tasks,
		topics:   topics,
		clock:    clk,
		logger:   logger,
		cfg:      cfg,
	}
}

// Summary assembles the rolling-activity view for one user.
func (uc *UseCase) Summary(ctx context.Context, ownerID string, windowDays int) (*domain.Summary, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	stopped, err := uc.stoppedSessions(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	activity, total := bucketActivity(stopped, now, windowDays)
	streak := studyStreak(stopped, now)

	dueSoon, err := uc.DueSoon(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("summary computed",
		zap.String("owner_id", ownerID),
		zap.Int("window_days", windowDays),
		zap.Int("window_mins", total),
		zap.Int("streak", streak))

	return &domain.Summary{
		WindowDays:     windowDays,
		WindowMins:     total,
		Streak:         streak,
		RecentActivity: activity,
		DueSoon:        dueSoon,
	}, nil
}

// DueSoon returns the nearest dated open tasks, earliest deadline first.
func (uc *UseCase) DueSoon(ctx context.Context, ownerID string) ([]domain.DueTask, error) {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{
		OwnerID:  ownerID,
		OpenOnly: true,
		DueOnly:  true,
		Limit:    uc.cfg.DueSoonLimit,
	})
	if err != nil {
		return nil, err
	}

	due := make([]domain.DueTask, 0, len(tasks))
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		due = append(due, domain.DueTask{
			ID:       t.ID,
			Title:    t.Title,
			DueDate:  *t.DueDate,
			Priority: t.Priority,
			TopicID:  t.TopicID,
		})
	}
	return due, nil
}

// stoppedSessions pulls the user's full finished-session history. Running
// sessions are excluded everywhere so partial work never skews totals.
func (uc *UseCase) stoppedSessions(ctx context.Context, ownerID string) ([]domain.StudySession, error) {
	return uc.sessions.List(ctx, repository.StudySessionFilter{
		OwnerID:     ownerID,
		StoppedOnly: true,
	})
}
