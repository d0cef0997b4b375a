package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsedMinutes(t *testing.T) {
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		endedAt time.Time
		want    int
	}{
		{"partial minute rounds up", start.Add(42*time.Minute + 12*time.Second), 43},
		{"exact minutes stay exact", start.Add(42 * time.Minute), 42},
		{"sub-minute session counts one", start.Add(10 * time.Second), 1},
		{"zero duration", start, 0},
		{"clock skew clamps to zero", start.Add(-5 * time.Minute), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ElapsedMinutes(start, tt.endedAt))
		})
	}
}

func TestStudySessionRunning(t *testing.T) {
	ended := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

	running := &StudySession{StartedAt: ended.Add(-time.Hour)}
	assert.True(t, running.Running())

	stopped := &StudySession{StartedAt: ended.Add(-time.Hour), EndedAt: &ended}
	assert.False(t, stopped.Running())

	var nilSession *StudySession
	assert.False(t, nilSession.Running())
}
