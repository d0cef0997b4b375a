package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreMarshalsWithFixedPrecision(t *testing.T) {
	tests := []struct {
		score Score
		want  string
	}{
		{Score(2.55), "2.550000"},
		{Score(0), "0.000000"},
		{Score(1.35), "1.350000"},
		{Score(2.732143), "2.732143"},
	}

	for _, tt := range tests {
		raw, err := json.Marshal(tt.score)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(raw))
	}
}

func TestRankedTaskMarshal(t *testing.T) {
	due, err := ParseDate("2026-03-12")
	require.NoError(t, err)

	raw, err := json.Marshal(RankedTask{
		ID:       "task-1",
		Title:    "Integrate by parts",
		Priority: 3,
		Status:   StatusTodo,
		DueDate:  &due,
		TopicID:  "topic-1",
		Score:    Score(2.55),
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "task-1",
		"title": "Integrate by parts",
		"priority": 3,
		"status": "TODO",
		"due_date": "2026-03-12",
		"topic_id": "topic-1",
		"score": 2.550000
	}`, string(raw))
}
