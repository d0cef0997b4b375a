package domain

import "time"

// Subject is a high-level area of study (e.g. "Mathematics").
// Names are unique per owner.
type Subject struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSubjectColor is the UI tag color applied when none is supplied.
const DefaultSubjectColor = "#888888"
