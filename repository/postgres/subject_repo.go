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

type subjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository returns a Postgres-backed SubjectRepository.
func NewSubjectRepository(pool *pgxpool.Pool) repository.SubjectRepository {
	return &subjectRepository{pool: pool}
}

func (r *subjectRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.Subject, error) {
	const query = `
	SELECT id, user_id, name, color, created_at, updated_at
	FROM subjects
	WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, ownerID)
	return scanSubject(row)
}

func (r *subjectRepository) List(ctx context.Context, filter repository.SubjectFilter) ([]domain.Subject, error) {
	const query = `
	SELECT id, user_id, name, color, created_at, updated_at
	FROM subjects
	WHERE user_id = $1
	ORDER BY name ASC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.OwnerID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, *subject)
	}
	return subjects, rows.Err()
}

func (r *subjectRepository) Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	if subject == nil {
		return nil, domain.ErrInvalidPayload
	}
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	if subject.Color == "" {
		subject.Color = domain.DefaultSubjectColor
	}

	const query = `
	INSERT INTO subjects (id, user_id, name, color)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		subject.ID,
		subject.UserID,
		subject.Name,
		subject.Color,
	).Scan(&subject.CreatedAt, &subject.UpdatedAt); err != nil {
		return nil, err
	}
	return subject, nil
}

func (r *subjectRepository) Update(ctx context.Context, subject *domain.Subject) error {
	if subject == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE subjects
	SET name = $3,
		color = $4,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		subject.ID,
		subject.UserID,
		subject.Name,
		subject.Color,
	).Scan(&subject.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrSubjectNotFound
		}
		return err
	}
	return nil
}

func (r *subjectRepository) Delete(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM subjects WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubjectNotFound
	}
	return nil
}

func scanSubject(row scannable) (*domain.Subject, error) {
	var subject domain.Subject
	if err := row.Scan(
		&subject.ID,
		&subject.UserID,
		&subject.Name,
		&subject.Color,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubjectNotFound
		}
		return nil, err
	}
	return &subject, nil
}
