package subject

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/repository"
)

const maxNameLength = 80

type UseCase struct {
	subjects repository.SubjectRepository
	logger   *zap.Logger
}

func New(subjects repository.SubjectRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		subjects: subjects,
		logger:   logger,
	}
}

func (uc *UseCase) ListSubjects(ctx context.Context, filter repository.SubjectFilter) ([]domain.Subject, error) {
	return uc.subjects.List(ctx, filter)
}

func (uc *UseCase) GetSubject(ctx context.Context, id, ownerID string) (*domain.Subject, error) {
	return uc.subjects.GetByID(ctx, id, ownerID)
}

func (uc *UseCase) CreateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	if err := validate(subject); err != nil {
		return nil, err
	}
	return uc.subjects.Create(ctx, subject)
}

func (uc *UseCase) UpdateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	if err := validate(subject); err != nil {
		return nil, err
	}
	if err := uc.subjects.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (uc *UseCase) DeleteSubject(ctx context.Context, id, ownerID string) error {
	return uc.subjects.Delete(ctx, id, ownerID)
}

func validate(subject *domain.Subject) error {
	if subject == nil || strings.TrimSpace(subject.Name) == "" {
		return domain.NewError(domain.ErrCodeInvalid, "subject name is required")
	}
	if len(subject.Name) > maxNameLength {
		return domain.NewError(domain.ErrCodeInvalid, "subject name too long")
	}
	if subject.Color == "" {
		subject.Color = domain.DefaultSubjectColor
	}
	if !strings.HasPrefix(subject.Color, "#") || len(subject.Color) != 7 {
		return domain.NewError(domain.ErrCodeInvalid, "color must be a #RRGGBB value")
	}
	return nil
}
