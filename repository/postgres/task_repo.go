package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	const query = `
	SELECT id, user_id, topic_id, title, due_date, priority, status, notes, created_at, updated_at
	FROM tasks
	WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, ownerID)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	// DueOnly feeds the due-soon view: dated open tasks, nearest deadline
	// first, higher priority breaking ties.
	const query = `
	SELECT id, user_id, topic_id, title, due_date, priority, status, notes, created_at, updated_at
	FROM tasks
	WHERE user_id = $1
	  AND ($2 = '' OR topic_id = $2)
	  AND ($3 = '' OR status = $3)
	  AND (NOT $4 OR status IN ('TODO', 'DOING'))
	  AND (NOT $5 OR due_date IS NOT NULL)
	ORDER BY
	  CASE WHEN $5 THEN due_date END ASC NULLS LAST,
	  CASE WHEN $5 THEN priority END DESC,
	  created_at DESC
	LIMIT $6 OFFSET $7
	`
	rows, err := r.pool.Query(ctx, query,
		filter.OwnerID,
		filter.TopicID,
		string(filter.Status),
		filter.OpenOnly,
		filter.DueOnly,
		clampLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, user_id, topic_id, title, due_date, priority, status, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.TopicID,
		task.Title,
		dueValue(task.DueDate),
		task.Priority,
		string(task.Status),
		task.Notes,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $3,
		due_date = $4,
		priority = $5,
		status = $6,
		notes = $7,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		dueValue(task.DueDate),
		task.Priority,
		string(task.Status),
		task.Notes,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row scannable) (*domain.Task, error) {
	var task domain.Task
	var (
		due    *time.Time
		status string
	)
	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.TopicID,
		&task.Title,
		&due,
		&task.Priority,
		&status,
		&task.Notes,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	task.Status = domain.Status(status)
	if due != nil {
		d := domain.NewDate(*due)
		task.DueDate = &d
	}
	return &task, nil
}

func dueValue(due *domain.Date) interface{} {
	if due == nil {
		return nil
	}
	return due.Time
}
