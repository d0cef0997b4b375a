package usecase

import (
	"context"

	"github.com/studyzen/backend/domain"
)

// Operation names shared with the offline write buffer.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the buffer processor so use cases stay
// storage-agnostic. Study-session writes never go through the buffer: a
// replayed stop would forge its timestamp, so session mutations always hit
// primary storage directly.
type OperationBuffer interface {
	BufferProfile(ctx context.Context, operation string, user *domain.User) error
	BufferTask(ctx context.Context, operation string, task *domain.Task) error
	BufferTopic(ctx context.Context, operation string, topic *domain.Topic) error
}
