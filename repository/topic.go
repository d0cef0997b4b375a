package repository

import (
	"context"

	"github.com/studyzen/backend/domain"
)

type TopicFilter struct {
	OwnerID   string
	SubjectID string
	Status    domain.Status
	Limit     int
	Offset    int
}

type TopicRepository interface {
	GetByID(ctx context.Context, id, ownerID string) (*domain.Topic, error)
	List(ctx context.Context, filter TopicFilter) ([]domain.Topic, error)
	Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error)
	Update(ctx context.Context, topic *domain.Topic) error
	Delete(ctx context.Context, id, ownerID string) error
}
