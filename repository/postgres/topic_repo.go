package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/repository"
)

type topicRepository struct {
	pool *pgxpool.Pool
}

// NewTopicRepository returns a Postgres-backed TopicRepository.
func NewTopicRepository(pool *pgxpool.Pool) repository.TopicRepository {
	return &topicRepository{pool: pool}
}

func (r *topicRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.Topic, error) {
	const query = `
	SELECT id, user_id, subject_id, title, status, struggle_level, created_at, updated_at
	FROM topics
	WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, ownerID)
	return scanTopic(row)
}

func (r *topicRepository) List(ctx context.Context, filter repository.TopicFilter) ([]domain.Topic, error) {
	const query = `
	SELECT id, user_id, subject_id, title, status, struggle_level, created_at, updated_at
	FROM topics
	WHERE user_id = $1
	  AND ($2 = '' OR subject_id = $2)
	  AND ($3 = '' OR status = $3)
	ORDER BY created_at DESC
	LIMIT $4 OFFSET $5
	`
	rows, err := r.pool.Query(ctx, query,
		filter.OwnerID,
		filter.SubjectID,
		string(filter.Status),
		clampLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []domain.Topic
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, *topic)
	}
	return topics, rows.Err()
}

func (r *topicRepository) Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error) {
	if topic == nil {
		return nil, domain.ErrInvalidPayload
	}
	if topic.ID == "" {
		topic.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO topics (id, user_id, subject_id, title, status, struggle_level)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		topic.ID,
		topic.UserID,
		topic.SubjectID,
		topic.Title,
		string(topic.Status),
		topic.StruggleLevel,
	).Scan(&topic.CreatedAt, &topic.UpdatedAt); err != nil {
		return nil, err
	}
	return topic, nil
}

func (r *topicRepository) Update(ctx context.Context, topic *domain.Topic) error {
	if topic == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE topics
	SET title = $3,
		status = $4,
		struggle_level = $5,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		topic.ID,
		topic.UserID,
		topic.Title,
		string(topic.Status),
		topic.StruggleLevel,
	).Scan(&topic.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTopicNotFound
		}
		return err
	}
	return nil
}

func (r *topicRepository) Delete(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM topics WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTopicNotFound
	}
	return nil
}

func scanTopic(row scannable) (*domain.Topic, error) {
	var topic domain.Topic
	var status string
	if err := row.Scan(
		&topic.ID,
		&topic.UserID,
		&topic.SubjectID,
		&topic.Title,
		&status,
		&topic.StruggleLevel,
		&topic.CreatedAt,
		&topic.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTopicNotFound
		}
		return nil, err
	}
	topic.Status = domain.Status(status)
	return &topic, nil
}
