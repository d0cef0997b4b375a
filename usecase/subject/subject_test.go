package subject

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/repository"
)

type fakeSubjectRepo struct {
	subjects map[string]*domain.Subject
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{subjects: make(map[string]*domain.Subject)}
}

func (f *fakeSubjectRepo) GetByID(_ context.Context, id, ownerID string) (*domain.Subject, error) {
	s, ok := f.subjects[id]
	if !ok || s.UserID != ownerID {
		return nil, domain.ErrSubjectNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSubjectRepo) List(_ context.Context, filter repository.SubjectFilter) ([]domain.Subject, error) {
	out := make([]domain.Subject, 0, len(f.subjects))
	for _, s := range f.subjects {
		if s.UserID == filter.OwnerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubjectRepo) Create(_ context.Context, subject *domain.Subject) (*domain.Subject, error) {
	created := *subject
	if created.ID == "" {
		created.ID = "sub-1"
	}
	f.subjects[created.ID] = &created
	result := created
	return &result, nil
}

func (f *fakeSubjectRepo) Update(_ context.Context, subject *domain.Subject) error {
	existing, ok := f.subjects[subject.ID]
	if !ok || existing.UserID != subject.UserID {
		return domain.ErrSubjectNotFound
	}
	copied := *subject
	f.subjects[subject.ID] = &copied
	return nil
}

func (f *fakeSubjectRepo) Delete(_ context.Context, id, ownerID string) error {
	existing, ok := f.subjects[id]
	if !ok || existing.UserID != ownerID {
		return domain.ErrSubjectNotFound
	}
	delete(f.subjects, id)
	return nil
}

func TestCreateSubjectDefaultsColor(t *testing.T) {
	uc := New(newFakeSubjectRepo(), nil)

	created, err := uc.CreateSubject(context.Background(), &domain.Subject{
		UserID: "u1",
		Name:   "Linear Algebra",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSubjectColor, created.Color)
}

func TestCreateSubjectValidation(t *testing.T) {
	uc := New(newFakeSubjectRepo(), nil)

	tests := []struct {
		name    string
		subject *domain.Subject
	}{
		{"missing name", &domain.Subject{UserID: "u1"}},
		{"whitespace name", &domain.Subject{UserID: "u1", Name: "   "}},
		{"name too long", &domain.Subject{UserID: "u1", Name: strings.Repeat("x", 81)}},
		{"bad color", &domain.Subject{UserID: "u1", Name: "Maths", Color: "red"}},
		{"short hex color", &domain.Subject{UserID: "u1", Name: "Maths", Color: "#f00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateSubject(context.Background(), tt.subject)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
		})
	}
}

func TestSubjectLifecycle(t *testing.T) {
	uc := New(newFakeSubjectRepo(), nil)

	created, err := uc.CreateSubject(context.Background(), &domain.Subject{
		UserID: "u1",
		Name:   "Linear Algebra",
		Color:  "#3366ff",
	})
	require.NoError(t, err)

	created.Name = "Calculus"
	updated, err := uc.UpdateSubject(context.Background(), created)
	require.NoError(t, err)
	assert.Equal(t, "Calculus", updated.Name)

	err = uc.DeleteSubject(context.Background(), created.ID, "u2")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	require.NoError(t, uc.DeleteSubject(context.Background(), created.ID, "u1"))

	_, err = uc.GetSubject(context.Background(), created.ID, "u1")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}
