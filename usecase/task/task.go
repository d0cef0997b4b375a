package task

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/repository"
	"github.com/studyzen/backend/usecase"
)

type UseCase struct {
	tasks  repository.TaskRepository
	topics repository.TopicRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, topics repository.TopicRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		topics: topics,
		buffer: buffer,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetTask(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id, ownerID)
}

func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := uc.validate(ctx, task, true); err != nil {
		return nil, err
	}
	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, task) {
			return task, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := uc.validate(ctx, task, false); err != nil {
		return nil, err
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		if err == domain.ErrTaskNotFound {
			return nil, err
		}
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, task) {
			return task, nil
		}
		return nil, err
	}
	return task, nil
}

// CompleteTask marks a task DONE. Completed tasks drop out of due-soon and
// blueprint views but keep their session history.
func (uc *UseCase) CompleteTask(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	task.Status = domain.StatusDone
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id, ownerID string) error {
	if err := uc.tasks.Delete(ctx, id, ownerID); err != nil {
		if err == domain.ErrTaskNotFound {
			return err
		}
		task := &domain.Task{ID: id, UserID: ownerID}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, task) {
			return nil
		}
		return err
	}
	return nil
}

func (uc *UseCase) validate(ctx context.Context, task *domain.Task, checkTopic bool) error {
	if task == nil || task.Title == "" {
		return domain.NewError(domain.ErrCodeInvalid, "task title is required")
	}
	if task.Priority == 0 {
		task.Priority = domain.PriorityDefault
	}
	if task.Priority < domain.PriorityMin || task.Priority > domain.PriorityMax {
		return domain.NewError(domain.ErrCodeInvalid,
			fmt.Sprintf("priority must be %d..%d", domain.PriorityMin, domain.PriorityMax))
	}
	if task.Status == "" {
		task.Status = domain.StatusTodo
	}
	if !task.Status.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, "status must be TODO, DOING or DONE")
	}
	if checkTopic {
		if task.TopicID == "" {
			return domain.NewError(domain.ErrCodeInvalid, "topic reference is required")
		}
		if _, err := uc.topics.GetByID(ctx, task.TopicID, task.UserID); err != nil {
			return domain.WrapError(domain.ErrCodeInvalid, "topic reference does not resolve", err)
		}
	}
	return nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, task *domain.Task) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, task); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered", zap.String("operation", operation))
	return true
}
