package domain

import "time"

// Struggle level bounds. 0 means no difficulty signal, 3 is the hardest.
const (
	StruggleMin = 0
	StruggleMax = 3
)

// Topic is a sub-area within a subject (e.g. "Eigenvalues").
type Topic struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	SubjectID     string    `json:"subject_id"`
	Title         string    `json:"title"`
	Status        Status    `json:"status"`
	StruggleLevel int       `json:"struggle_level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
