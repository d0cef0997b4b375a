package repository

import (
	"context"

	"github.com/studyzen/backend/domain"
)

type SubjectFilter struct {
	OwnerID string
	Limit   int
	Offset  int
}

type SubjectRepository interface {
	GetByID(ctx context.Context, id, ownerID string) (*domain.Subject, error)
	List(ctx context.Context, filter SubjectFilter) ([]domain.Subject, error)
	Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	Update(ctx context.Context, subject *domain.Subject) error
	Delete(ctx context.Context, id, ownerID string) error
}
