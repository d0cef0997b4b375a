package domain

import "time"

// Priority bounds. 3 is the most urgent; new tasks default to 2.
const (
	PriorityMin     = 1
	PriorityMax     = 3
	PriorityDefault = 2
)

// Task is a concrete, actionable study item tied to a topic.
// Deadlines are optional; the system works without them.
type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TopicID   string    `json:"topic_id"`
	Title     string    `json:"title"`
	DueDate   *Date     `json:"due_date,omitempty"`
	Priority  int       `json:"priority"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Open reports whether the task still counts for due-soon and blueprint views.
func (t *Task) Open() bool {
	return t != nil && t.Status.Open()
}
