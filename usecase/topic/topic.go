package topic

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/repository"
	"github.com/studyzen/backend/usecase"
)

type UseCase struct {
	topics   repository.TopicRepository
	subjects repository.SubjectRepository
	buffer   usecase.OperationBuffer
	logger   *zap.Logger
}

func New(topics repository.TopicRepository, subjects repository.SubjectRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		topics:   topics,
		subjects: subjects,
		buffer:   buffer,
		logger:   logger,
	}
}

func (uc *UseCase) ListTopics(ctx context.Context, filter repository.TopicFilter) ([]domain.Topic, error) {
	return uc.topics.List(ctx, filter)
}

func (uc *UseCase) GetTopic(ctx context.Context, id, ownerID string) (*domain.Topic, error) {
	return uc.topics.GetByID(ctx, id, ownerID)
}

func (uc *UseCase) CreateTopic(ctx context.Context, topic *domain.Topic) (*domain.Topic, error) {
	if err := uc.validate(ctx, topic, true); err != nil {
		return nil, err
	}
	created, err := uc.topics.Create(ctx, topic)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, topic) {
			return topic, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) UpdateTopic(ctx context.Context, topic *domain.Topic) (*domain.Topic, error) {
	if err := uc.validate(ctx, topic, false); err != nil {
		return nil, err
	}
	if err := uc.topics.Update(ctx, topic); err != nil {
		if err == domain.ErrTopicNotFound {
			return nil, err
		}
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, topic) {
			return topic, nil
		}
		return nil, err
	}
	return topic, nil
}

func (uc *UseCase) DeleteTopic(ctx context.Context, id, ownerID string) error {
	return uc.topics.Delete(ctx, id, ownerID)
}

func (uc *UseCase) validate(ctx context.Context, topic *domain.Topic, checkSubject bool) error {
	if topic == nil || topic.Title == "" {
		return domain.NewError(domain.ErrCodeInvalid, "topic title is required")
	}
	if topic.Status == "" {
		topic.Status = domain.StatusTodo
	}
	if !topic.Status.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, "status must be TODO, DOING or DONE")
	}
	if topic.StruggleLevel < domain.StruggleMin || topic.StruggleLevel > domain.StruggleMax {
		return domain.NewError(domain.ErrCodeInvalid,
			fmt.Sprintf("struggle_level must be %d..%d", domain.StruggleMin, domain.StruggleMax))
	}
	if checkSubject {
		if topic.SubjectID == "" {
			return domain.NewError(domain.ErrCodeInvalid, "subject reference is required")
		}
		if _, err := uc.subjects.GetByID(ctx, topic.SubjectID, topic.UserID); err != nil {
			return domain.WrapError(domain.ErrCodeInvalid, "subject reference does not resolve", err)
		}
	}
	return nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, topic *domain.Topic) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTopic(ctx, operation, topic); err != nil {
		uc.logger.Error("failed to buffer topic operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("topic operation buffered", zap.String("operation", operation))
	return true
}
