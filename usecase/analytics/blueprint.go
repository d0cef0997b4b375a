package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/repository"
)

// Blueprint score weights. Priority and struggle enter at their raw scale
// (1..3 and 0..3); recency and urgency are normalized onto the same 0..3
// range so every factor can move the score.
const (
	weightPriority = 0.45
	weightStruggle = 0.30
	weightRecency  = 0.15
	weightUrgency  = 0.10

	factorCeiling = 3.0
	// recencyHorizonDays is the decay scale: one recency point per week
	// untouched, saturating at the ceiling after three weeks.
	recencyHorizonDays = 7.0
)

// Blueprint ranks a user's open tasks by composite score, highest first,
// capped at limit entries. A non-positive limit yields an empty list.
func (uc *UseCase) Blueprint(ctx context.Context, ownerID string, limit int) ([]domain.RankedTask, error) {
	if limit <= 0 {
		return []domain.RankedTask{}, nil
	}

	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{
		OwnerID:  ownerID,
		OpenOnly: true,
	})
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return []domain.RankedTask{}, nil
	}

	topics, err := uc.topics.List(ctx, repository.TopicFilter{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	struggleByTopic := make(map[string]int, len(topics))
	for _, t := range topics {
		struggleByTopic[t.ID] = t.StruggleLevel
	}

	stopped, err := uc.stoppedSessions(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	lastByTopic, lastByTask := lastStudied(stopped)

	now := uc.clock.Now()
	entries := make([]scoredTask, 0, len(tasks))
	for _, task := range tasks {
		last := latestOf(lastByTopic[task.TopicID], lastByTask[task.ID])
		entries = append(entries, scoredTask{
			task:  task,
			last:  last,
			score: scoreTask(task, struggleByTopic[task.TopicID], last, now),
		})
	}

	sortRanked(entries)

	if limit > len(entries) {
		limit = len(entries)
	}
	ranked := make([]domain.RankedTask, 0, limit)
	for _, e := range entries[:limit] {
		ranked = append(ranked, domain.RankedTask{
			ID:       e.task.ID,
			Title:    e.task.Title,
			Priority: e.task.Priority,
			Status:   e.task.Status,
			DueDate:  e.task.DueDate,
			TopicID:  e.task.TopicID,
			Score:    domain.Score(e.score),
		})
	}

	uc.logger.Debug("blueprint computed",
		zap.String("owner_id", ownerID),
		zap.Int("open_tasks", len(tasks)),
		zap.Int("returned", len(ranked)))

	return ranked, nil
}

type scoredTask struct {
	task  domain.Task
	last  time.Time
	score float64
}

// scoreTask applies the fixed-weight formula:
//
//	score = 0.45*priority + 0.30*struggle + 0.15*recency + 0.10*urgency
//
// The result is rounded to six decimals, matching the serialized precision,
// so tie-breaking operates on the rendered value.
func scoreTask(task domain.Task, struggle int, lastStudied time.Time, now time.Time) float64 {
	priority := task.Priority
	if priority < domain.PriorityMin || priority > domain.PriorityMax {
		priority = domain.PriorityDefault
	}
	if struggle < domain.StruggleMin {
		struggle = domain.StruggleMin
	}
	if struggle > domain.StruggleMax {
		struggle = domain.StruggleMax
	}

	raw := weightPriority*float64(priority) +
		weightStruggle*float64(struggle) +
		weightRecency*recencyScore(lastStudied, now) +
		weightUrgency*urgencyScore(task.DueDate, now)

	return math.Round(raw*1e6) / 1e6
}

// recencyScore rewards neglected material: zero right after studying,
// climbing one point per untouched week, capped at the ceiling. Tasks whose
// topic was never studied score the maximum.
func recencyScore(lastStudied time.Time, now time.Time) float64 {
	if lastStudied.IsZero() {
		return factorCeiling
	}
	days := domain.NewDate(now).DaysUntil(lastStudied)
	if days <= 0 {
		return 0
	}
	score := float64(days) / recencyHorizonDays
	if score > factorCeiling {
		return factorCeiling
	}
	return score
}

// urgencyScore rises as the deadline approaches: ceiling when due within a
// day (or overdue), halving at two days out, fading toward zero for distant
// deadlines. Undated tasks contribute nothing, never a penalty.
func urgencyScore(due *domain.Date, now time.Time) float64 {
	if due == nil {
		return 0
	}
	days := due.DaysUntil(now)
	if days < 1 {
		days = 1
	}
	return factorCeiling / float64(days)
}

// sortRanked orders by score descending; exact ties fall through to earlier
// due date (undated last), then higher priority, then least recently
// studied (never-studied first).
func sortRanked(entries []scoredTask) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if c := compareDue(a.task.DueDate, b.task.DueDate); c != 0 {
			return c < 0
		}
		if a.task.Priority != b.task.Priority {
			return a.task.Priority > b.task.Priority
		}
		return lessRecentlyStudied(a.last, b.last)
	})
}

func compareDue(a, b *domain.Date) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(b.Time):
		return -1
	case b.Before(a.Time):
		return 1
	default:
		return 0
	}
}

func lessRecentlyStudied(a, b time.Time) bool {
	switch {
	case a.IsZero():
		return !b.IsZero()
	case b.IsZero():
		return false
	default:
		return a.Before(b)
	}
}

// lastStudied maps topic and task ids to the start time of their most
// recent finished session.
func lastStudied(sessions []domain.StudySession) (byTopic, byTask map[string]time.Time) {
	byTopic = make(map[string]time.Time)
	byTask = make(map[string]time.Time)
	for _, s := range sessions {
		if s.EndedAt == nil {
			continue
		}
		if s.TopicID != nil && s.StartedAt.After(byTopic[*s.TopicID]) {
			byTopic[*s.TopicID] = s.StartedAt
		}
		if s.TaskID != nil && s.StartedAt.After(byTask[*s.TaskID]) {
			byTask[*s.TaskID] = s.StartedAt
		}
	}
	return byTopic, byTask
}

func latestOf(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
