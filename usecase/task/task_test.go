package task

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/repository"
	"github.com/studyzen/backend/usecase"
)

type fakeTaskRepo struct {
	tasks     map[string]*domain.Task
	failWrite error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id, ownerID string) (*domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok || t.UserID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		if t.UserID == filter.OwnerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if f.failWrite != nil {
		return nil, f.failWrite
	}
	created := *task
	if created.ID == "" {
		created.ID = "task-1"
	}
	f.tasks[created.ID] = &created
	result := created
	return &result, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if f.failWrite != nil {
		return f.failWrite
	}
	existing, ok := f.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return domain.ErrTaskNotFound
	}
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id, ownerID string) error {
	if f.failWrite != nil {
		return f.failWrite
	}
	existing, ok := f.tasks[id]
	if !ok || existing.UserID != ownerID {
		return domain.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

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

type recordingBuffer struct {
	operations []string
	err        error
}

func (b *recordingBuffer) BufferProfile(_ context.Context, operation string, _ *domain.User) error {
	b.operations = append(b.operations, "profile:"+operation)
	return b.err
}

func (b *recordingBuffer) BufferTask(_ context.Context, operation string, _ *domain.Task) error {
	b.operations = append(b.operations, "task:"+operation)
	return b.err
}

func (b *recordingBuffer) BufferTopic(_ context.Context, operation string, _ *domain.Topic) error {
	b.operations = append(b.operations, "topic:"+operation)
	return b.err
}

func newFixture() (*fakeTaskRepo, *fakeTopicRepo) {
	tasks := newFakeTaskRepo()
	topics := &fakeTopicRepo{topics: map[string]*domain.Topic{
		"topic-1": {ID: "topic-1", UserID: "u1", SubjectID: "sub-1", Title: "Integrals"},
	}}
	return tasks, topics
}

func TestCreateTaskDefaults(t *testing.T) {
	tasks, topics := newFixture()
	uc := New(tasks, topics, nil, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{
		UserID:  "u1",
		TopicID: "topic-1",
		Title:   "Worksheet",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PriorityDefault, created.Priority)
	assert.Equal(t, domain.StatusTodo, created.Status)
}

func TestCreateTaskValidation(t *testing.T) {
	tasks, topics := newFixture()
	uc := New(tasks, topics, nil, nil)

	tests := []struct {
		name string
		task *domain.Task
	}{
		{"missing title", &domain.Task{UserID: "u1", TopicID: "topic-1"}},
		{"priority out of range", &domain.Task{UserID: "u1", TopicID: "topic-1", Title: "X", Priority: 4}},
		{"bad status", &domain.Task{UserID: "u1", TopicID: "topic-1", Title: "X", Status: "BLOCKED"}},
		{"missing topic", &domain.Task{UserID: "u1", Title: "X"}},
		{"foreign topic", &domain.Task{UserID: "u2", TopicID: "topic-1", Title: "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateTask(context.Background(), tt.task)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
		})
	}
}

func TestCompleteTask(t *testing.T) {
	tasks, topics := newFixture()
	tasks.tasks["task-1"] = &domain.Task{
		ID: "task-1", UserID: "u1", TopicID: "topic-1", Title: "Worksheet",
		Priority: 2, Status: domain.StatusDoing,
	}
	uc := New(tasks, topics, nil, nil)

	completed, err := uc.CompleteTask(context.Background(), "task-1", "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, completed.Status)

	stored, err := uc.GetTask(context.Background(), "task-1", "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, stored.Status)
}

func TestCompleteTaskScopedToOwner(t *testing.T) {
	tasks, topics := newFixture()
	tasks.tasks["task-1"] = &domain.Task{
		ID: "task-1", UserID: "u1", TopicID: "topic-1", Title: "Worksheet",
		Priority: 2, Status: domain.StatusTodo,
	}
	uc := New(tasks, topics, nil, nil)

	_, err := uc.CompleteTask(context.Background(), "task-1", "u2")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestCreateTaskBuffersWhenStorageDown(t *testing.T) {
	tasks, topics := newFixture()
	tasks.failWrite = errors.New("connection refused")
	buf := &recordingBuffer{}
	uc := New(tasks, topics, buf, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{
		UserID:  "u1",
		TopicID: "topic-1",
		Title:   "Worksheet",
	})
	require.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, []string{"task:" + usecase.OperationCreate}, buf.operations)
}

func TestCreateTaskSurfacesErrorWhenBufferFails(t *testing.T) {
	tasks, topics := newFixture()
	tasks.failWrite = errors.New("connection refused")
	buf := &recordingBuffer{err: errors.New("bolt unavailable")}
	uc := New(tasks, topics, buf, nil)

	_, err := uc.CreateTask(context.Background(), &domain.Task{
		UserID:  "u1",
		TopicID: "topic-1",
		Title:   "Worksheet",
	})
	require.Error(t, err)
}

func TestUpdateTaskNotFoundSkipsBuffer(t *testing.T) {
	tasks, topics := newFixture()
	buf := &recordingBuffer{}
	uc := New(tasks, topics, buf, nil)

	_, err := uc.UpdateTask(context.Background(), &domain.Task{
		ID: "missing", UserID: "u1", Title: "X", Priority: 2, Status: domain.StatusTodo,
	})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
	assert.Empty(t, buf.operations)
}
