package studysession

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/internal/clock"
	"github.com/studyzen/backend/repository"
)

type fakeSessionRepo struct {
	sessions map[string]*domain.StudySession
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.StudySession)}
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id, ownerID string) (*domain.StudySession, error) {
	s, ok := f.sessions[id]
	if !ok || s.UserID != ownerID {
		return nil, domain.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) List(_ context.Context, filter repository.StudySessionFilter) ([]domain.StudySession, error) {
	out := make([]domain.StudySession, 0, len(f.sessions))
	for _, s := range f.sessions {
		if s.UserID == filter.OwnerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Create(_ context.Context, session *domain.StudySession) (*domain.StudySession, error) {
	f.nextID++
	created := *session
	created.ID = fmt.Sprintf("session-%d", f.nextID)
	f.sessions[created.ID] = &created
	result := created
	return &result, nil
}

func (f *fakeSessionRepo) Stop(_ context.Context, id, ownerID string, endedAt time.Time, minutes int) (*domain.StudySession, error) {
	s, ok := f.sessions[id]
	if !ok || s.UserID != ownerID {
		return nil, domain.ErrSessionNotFound
	}
	if s.EndedAt != nil {
		return nil, domain.ErrSessionAlreadyStopped
	}
	s.EndedAt = &endedAt
	s.Minutes = minutes
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id, ownerID string) error {
	s, ok := f.sessions[id]
	if !ok || s.UserID != ownerID {
		return domain.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

type fakeTaskRepo struct {
	tasks map[string]*domain.Task
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id, ownerID string) (*domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok || t.UserID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeTaskRepo) List(_ context.Context, _ repository.TaskFilter) ([]domain.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, _ *domain.Task) error { return nil }

func (f *fakeTaskRepo) Delete(_ context.Context, _, _ string) error { return nil }

type fakeTopicRepo struct {
	topics map[string]*domain.Topic
}

func (f *fakeTopicRepo) GetByID(_ context.Context, id, ownerID string) (*domain.Topic, error) {
	t, ok := f.topics[id]
	if !ok || t.UserID != ownerID {
		return nil, domain.ErrTopicNotFound
	}
	return t, nil
}

func (f *fakeTopicRepo) List(_ context.Context, _ repository.TopicFilter) ([]domain.Topic, error) {
	return nil, nil
}

func (f *fakeTopicRepo) Create(_ context.Context, topic *domain.Topic) (*domain.Topic, error) {
	return topic, nil
}

func (f *fakeTopicRepo) Update(_ context.Context, _ *domain.Topic) error { return nil }

func (f *fakeTopicRepo) Delete(_ context.Context, _, _ string) error { return nil }

var startInstant = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newFixture() (*fakeSessionRepo, *fakeTaskRepo, *fakeTopicRepo) {
	sessions := newFakeSessionRepo()
	tasks := &fakeTaskRepo{tasks: map[string]*domain.Task{
		"task-1": {ID: "task-1", UserID: "u1", TopicID: "topic-1", Title: "Worksheet", Priority: 2, Status: domain.StatusTodo},
	}}
	topics := &fakeTopicRepo{topics: map[string]*domain.Topic{
		"topic-1": {ID: "topic-1", UserID: "u1", SubjectID: "sub-1", Title: "Integrals", Status: domain.StatusDoing},
		"topic-2": {ID: "topic-2", UserID: "u1", SubjectID: "sub-1", Title: "Series", Status: domain.StatusTodo},
	}}
	return sessions, tasks, topics
}

func TestStartRequiresReference(t *testing.T) {
	sessions, tasks, topics := newFixture()
	uc := New(sessions, tasks, topics, clock.At(startInstant), nil)

	_, err := uc.Start(context.Background(), "u1", StartInput{})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestStartWithTaskInheritsTopic(t *testing.T) {
	sessions, tasks, topics := newFixture()
	uc := New(sessions, tasks, topics, clock.At(startInstant), nil)

	created, err := uc.Start(context.Background(), "u1", StartInput{TaskID: "task-1"})
	require.NoError(t, err)

	require.NotNil(t, created.TaskID)
	assert.Equal(t, "task-1", *created.TaskID)
	require.NotNil(t, created.TopicID)
	assert.Equal(t, "topic-1", *created.TopicID)
	assert.Equal(t, startInstant, created.StartedAt)
	assert.Nil(t, created.EndedAt)
	assert.Zero(t, created.Minutes)
}

func TestStartWithExplicitTopicKeepsIt(t *testing.T) {
	sessions, tasks, topics := newFixture()
	uc := New(sessions, tasks, topics, clock.At(startInstant), nil)

	created, err := uc.Start(context.Background(), "u1", StartInput{TaskID: "task-1", TopicID: "topic-2"})
	require.NoError(t, err)

	require.NotNil(t, created.TopicID)
	assert.Equal(t, "topic-2", *created.TopicID)
}

func TestStartRejectsForeignReferences(t *testing.T) {
	sessions, tasks, topics := newFixture()
	uc := New(sessions, tasks, topics, clock.At(startInstant), nil)

	_, err := uc.Start(context.Background(), "u2", StartInput{TaskID: "task-1"})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.Start(context.Background(), "u1", StartInput{TopicID: "missing"})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestStopComputesMinutes(t *testing.T) {
	sessions, tasks, topics := newFixture()

	startUC := New(sessions, tasks, topics, clock.At(startInstant), nil)
	created, err := startUC.Start(context.Background(), "u1", StartInput{TopicID: "topic-1"})
	require.NoError(t, err)

	// 12:00:00 to 12:42:12; the started-but-unfinished minute counts.
	stopUC := New(sessions, tasks, topics, clock.At(startInstant.Add(42*time.Minute+12*time.Second)), nil)
	stopped, err := stopUC.Stop(context.Background(), "u1", created.ID)
	require.NoError(t, err)

	assert.Equal(t, 43, stopped.Minutes)
	require.NotNil(t, stopped.EndedAt)
	assert.Equal(t, startInstant.Add(42*time.Minute+12*time.Second), *stopped.EndedAt)
}

func TestStopIsExactlyOnce(t *testing.T) {
	sessions, tasks, topics := newFixture()

	uc := New(sessions, tasks, topics, clock.At(startInstant), nil)
	created, err := uc.Start(context.Background(), "u1", StartInput{TopicID: "topic-1"})
	require.NoError(t, err)

	stopUC := New(sessions, tasks, topics, clock.At(startInstant.Add(time.Hour)), nil)
	first, err := stopUC.Stop(context.Background(), "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, first.Minutes)

	_, err = stopUC.Stop(context.Background(), "u1", created.ID)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
}

func TestStopUnknownSession(t *testing.T) {
	sessions, tasks, topics := newFixture()
	uc := New(sessions, tasks, topics, clock.At(startInstant), nil)

	_, err := uc.Stop(context.Background(), "u1", "missing")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestDeleteScopedToOwner(t *testing.T) {
	sessions, tasks, topics := newFixture()
	uc := New(sessions, tasks, topics, clock.At(startInstant), nil)

	created, err := uc.Start(context.Background(), "u1", StartInput{TopicID: "topic-1"})
	require.NoError(t, err)

	err = uc.Delete(context.Background(), "u2", created.ID)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	require.NoError(t, uc.Delete(context.Background(), "u1", created.ID))
}
