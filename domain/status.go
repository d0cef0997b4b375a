package domain

// Status is the kanban-style stage shared by topics and tasks.
type Status string

const (
	StatusTodo  Status = "TODO"
	StatusDoing Status = "DOING"
	StatusDone  Status = "DONE"
)

// Valid reports whether the status is one of the known stages.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// Open reports whether the stage still counts as actionable work.
func (s Status) Open() bool {
	return s == StatusTodo || s == StatusDoing
}
