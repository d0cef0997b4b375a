package repository

import (
	"context"

	"github.com/studyzen/backend/domain"
)

type TaskFilter struct {
	OwnerID string
	TopicID string
	Status  domain.Status
	// OpenOnly restricts results to TODO/DOING tasks.
	OpenOnly bool
	// DueOnly restricts results to tasks with a due date and orders them by
	// ascending due date, then descending priority.
	DueOnly bool
	Limit   int
	Offset  int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id, ownerID string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id, ownerID string) error
}
