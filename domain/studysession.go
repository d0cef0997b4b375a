package domain

import (
	"math"
	"time"
)

// StudySession is a timed focus block. Either TaskID or TopicID may be set
// (or both). The referenced task/topic may be deleted later; the session row
// survives with a nil reference so historical analytics stay intact.
type StudySession struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	TopicID   *string    `json:"topic_id,omitempty"`
	TaskID    *string    `json:"task_id,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Minutes   int        `json:"minutes"`
	Notes     string     `json:"notes,omitempty"`
}

// Running reports whether the session has not been stopped yet.
func (s *StudySession) Running() bool {
	return s != nil && s.EndedAt == nil
}

// ElapsedMinutes converts a start/stop pair into whole session minutes.
// Partial minutes count in full, so 42m12s of focus records as 43.
func ElapsedMinutes(startedAt, endedAt time.Time) int {
	seconds := endedAt.Sub(startedAt).Seconds()
	minutes := int(math.Ceil(seconds / 60))
	if minutes < 0 {
		return 0
	}
	return minutes
}
