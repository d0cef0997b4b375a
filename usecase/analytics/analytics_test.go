package analytics

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/internal/clock"
	"github.com/studyzen/backend/repository"
)

// fixedNow anchors every test at a known UTC instant.
var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeSessionRepo struct {
	sessions []domain.StudySession
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id, ownerID string) (*domain.StudySession, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == id && f.sessions[i].UserID == ownerID {
			return &f.sessions[i], nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (f *fakeSessionRepo) List(_ context.Context, filter repository.StudySessionFilter) ([]domain.StudySession, error) {
	out := make([]domain.StudySession, 0, len(f.sessions))
	for _, s := range f.sessions {
		if s.UserID != filter.OwnerID {
			continue
		}
		if filter.StoppedOnly && s.EndedAt == nil {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSessionRepo) Create(_ context.Context, session *domain.StudySession) (*domain.StudySession, error) {
	f.sessions = append(f.sessions, *session)
	return session, nil
}

func (f *fakeSessionRepo) Stop(_ context.Context, id, ownerID string, endedAt time.Time, minutes int) (*domain.StudySession, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == id && f.sessions[i].UserID == ownerID {
			if f.sessions[i].EndedAt != nil {
				return nil, domain.ErrSessionAlreadyStopped
			}
			f.sessions[i].EndedAt = &endedAt
			f.sessions[i].Minutes = minutes
			return &f.sessions[i], nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (f *fakeSessionRepo) Delete(_ context.Context, id, ownerID string) error {
	return nil
}

type fakeTaskRepo struct {
	tasks []domain.Task
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id, ownerID string) (*domain.Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == id && f.tasks[i].UserID == ownerID {
			return &f.tasks[i], nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (f *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		if t.UserID != filter.OwnerID {
			continue
		}
		if filter.OpenOnly && !t.Status.Open() {
			continue
		}
		if filter.DueOnly && t.DueDate == nil {
			continue
		}
		out = append(out, t)
	}
	if filter.DueOnly {
		sort.SliceStable(out, func(i, j int) bool {
			if !out[i].DueDate.Equal(out[j].DueDate.Time) {
				return out[i].DueDate.Before(out[j].DueDate.Time)
			}
			return out[i].Priority > out[j].Priority
		})
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	f.tasks = append(f.tasks, *task)
	return task, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error { return nil }

func (f *fakeTaskRepo) Delete(_ context.Context, id, ownerID string) error { return nil }

type fakeTopicRepo struct {
	topics []domain.Topic
}

func (f *fakeTopicRepo) GetByID(_ context.Context, id, ownerID string) (*domain.Topic, error) {
	for i := range f.topics {
		if f.topics[i].ID == id && f.topics[i].UserID == ownerID {
			return &f.topics[i], nil
		}
	}
	return nil, domain.ErrTopicNotFound
}

func (f *fakeTopicRepo) List(_ context.Context, filter repository.TopicFilter) ([]domain.Topic, error) {
	out := make([]domain.Topic, 0, len(f.topics))
	for _, t := range f.topics {
		if t.UserID == filter.OwnerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTopicRepo) Create(_ context.Context, topic *domain.Topic) (*domain.Topic, error) {
	f.topics = append(f.topics, *topic)
	return topic, nil
}

func (f *fakeTopicRepo) Update(_ context.Context, topic *domain.Topic) error { return nil }

func (f *fakeTopicRepo) Delete(_ context.Context, id, ownerID string) error { return nil }

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func datePtr(t *testing.T, value string) *domain.Date {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return &d
}

// stoppedSession builds a finished session that started daysAgo relative to
// fixedNow and recorded the given minutes.
func stoppedSession(owner string, daysAgo, minutes int) domain.StudySession {
	started := fixedNow.AddDate(0, 0, -daysAgo)
	return domain.StudySession{
		ID:        "s-" + started.Format("20060102"),
		UserID:    owner,
		StartedAt: started,
		EndedAt:   timePtr(started.Add(time.Duration(minutes) * time.Minute)),
		Minutes:   minutes,
	}
}

func newTestUseCase(sessions *fakeSessionRepo, tasks *fakeTaskRepo, topics *fakeTopicRepo) *UseCase {
	return New(sessions, tasks, topics, clock.At(fixedNow), nil, Config{})
}

func TestBucketActivityFillsWindow(t *testing.T) {
	sessions := []domain.StudySession{
		stoppedSession("u1", 0, 30),
		stoppedSession("u1", 3, 15),
		stoppedSession("u1", 10, 60), // outside a 7-day window
	}

	activity, total := bucketActivity(sessions, fixedNow, 7)

	require.Len(t, activity, 7)
	assert.Equal(t, 45, total)
	assert.Equal(t, "2026-03-04", activity[0].Date)
	assert.Equal(t, "2026-03-10", activity[6].Date)
	assert.Equal(t, 15, activity[3].Minutes)
	assert.Equal(t, 30, activity[6].Minutes)

	// Ascending, contiguous days.
	for i := 1; i < len(activity); i++ {
		prev, err := domain.ParseDate(activity[i-1].Date)
		require.NoError(t, err)
		cur, err := domain.ParseDate(activity[i].Date)
		require.NoError(t, err)
		assert.Equal(t, 1, cur.DaysUntil(prev.Time))
	}
}

func TestBucketActivityMergesSameDaySessions(t *testing.T) {
	morning := stoppedSession("u1", 0, 20)
	evening := stoppedSession("u1", 0, 25)
	evening.ID = "s-evening"

	activity, total := bucketActivity([]domain.StudySession{morning, evening}, fixedNow, 1)

	require.Len(t, activity, 1)
	assert.Equal(t, 45, total)
	assert.Equal(t, 45, activity[0].Minutes)
}

func TestBucketActivityIgnoresRunningSessions(t *testing.T) {
	running := domain.StudySession{ID: "s-run", UserID: "u1", StartedAt: fixedNow.Add(-time.Hour)}

	activity, total := bucketActivity([]domain.StudySession{running}, fixedNow, 7)

	require.Len(t, activity, 7)
	assert.Equal(t, 0, total)
}

func TestStudyStreak(t *testing.T) {
	tests := []struct {
		name     string
		daysAgo  []int
		expected int
	}{
		{"empty history", nil, 0},
		{"today only", []int{0}, 1},
		{"three consecutive days", []int{0, 1, 2}, 3},
		{"gap ends the count", []int{0, 1, 3, 4}, 2},
		{"no activity today means zero", []int{1, 2, 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := make([]domain.StudySession, 0, len(tt.daysAgo))
			for _, d := range tt.daysAgo {
				sessions = append(sessions, stoppedSession("u1", d, 25))
			}
			assert.Equal(t, tt.expected, studyStreak(sessions, fixedNow))
		})
	}
}

func TestSummary(t *testing.T) {
	sessionRepo := &fakeSessionRepo{sessions: []domain.StudySession{
		stoppedSession("u1", 0, 30),
		stoppedSession("u1", 1, 40),
		stoppedSession("u2", 0, 99), // another user's work stays invisible
	}}
	taskRepo := &fakeTaskRepo{tasks: []domain.Task{
		{ID: "t1", UserID: "u1", TopicID: "top1", Title: "Revise limits", DueDate: datePtr(t, "2026-03-12"), Priority: 3, Status: domain.StatusTodo},
		{ID: "t2", UserID: "u1", TopicID: "top1", Title: "Old worksheet", DueDate: datePtr(t, "2026-03-11"), Priority: 1, Status: domain.StatusDone},
		{ID: "t3", UserID: "u1", TopicID: "top1", Title: "Undated reading", Priority: 2, Status: domain.StatusTodo},
	}}

	uc := newTestUseCase(sessionRepo, taskRepo, &fakeTopicRepo{})

	summary, err := uc.Summary(context.Background(), "u1", 7)
	require.NoError(t, err)

	assert.Equal(t, 7, summary.WindowDays)
	assert.Equal(t, 70, summary.WindowMins)
	assert.Equal(t, 2, summary.Streak)
	require.Len(t, summary.RecentActivity, 7)

	// Done and undated tasks never reach the due-soon list.
	require.Len(t, summary.DueSoon, 1)
	assert.Equal(t, "t1", summary.DueSoon[0].ID)
}

func TestSummaryDefaultsWindow(t *testing.T) {
	uc := newTestUseCase(&fakeSessionRepo{}, &fakeTaskRepo{}, &fakeTopicRepo{})

	summary, err := uc.Summary(context.Background(), "u1", 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultWindowDays, summary.WindowDays)
	assert.Len(t, summary.RecentActivity, DefaultWindowDays)
	assert.Equal(t, 0, summary.WindowMins)
	assert.Equal(t, 0, summary.Streak)
}

func TestDueSoonOrdering(t *testing.T) {
	taskRepo := &fakeTaskRepo{tasks: []domain.Task{
		{ID: "far", UserID: "u1", TopicID: "top1", Title: "Far", DueDate: datePtr(t, "2026-03-20"), Priority: 3, Status: domain.StatusTodo},
		{ID: "near-low", UserID: "u1", TopicID: "top1", Title: "Near low", DueDate: datePtr(t, "2026-03-11"), Priority: 1, Status: domain.StatusTodo},
		{ID: "near-high", UserID: "u1", TopicID: "top1", Title: "Near high", DueDate: datePtr(t, "2026-03-11"), Priority: 3, Status: domain.StatusDoing},
	}}

	uc := newTestUseCase(&fakeSessionRepo{}, taskRepo, &fakeTopicRepo{})

	due, err := uc.DueSoon(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, due, 3)
	assert.Equal(t, "near-high", due[0].ID)
	assert.Equal(t, "near-low", due[1].ID)
	assert.Equal(t, "far", due[2].ID)
}

func TestDueSoonHonorsLimit(t *testing.T) {
	taskRepo := &fakeTaskRepo{}
	for i := 0; i < 8; i++ {
		day := fixedNow.AddDate(0, 0, i+1)
		d := domain.NewDate(day)
		taskRepo.tasks = append(taskRepo.tasks, domain.Task{
			ID: d.String(), UserID: "u1", TopicID: "top1", Title: "Task",
			DueDate: &d, Priority: 2, Status: domain.StatusTodo,
		})
	}

	uc := New(&fakeSessionRepo{}, taskRepo, &fakeTopicRepo{}, clock.At(fixedNow), nil, Config{DueSoonLimit: 3})

	due, err := uc.DueSoon(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, due, 3)
}
