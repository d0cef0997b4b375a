package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateNormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	d := NewDate(time.Date(2026, 3, 10, 1, 30, 0, 0, loc))

	// 01:30 at UTC+3 is still the previous UTC day.
	assert.Equal(t, "2026-03-09", d.String())
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, 0, d.Hour())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", d.String())

	_, err = ParseDate("10/03/2026")
	require.Error(t, err)
	assert.True(t, IsDomainError(err, ErrCodeInvalid))
}

func TestDateDaysUntil(t *testing.T) {
	due, err := ParseDate("2026-03-12")
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 2, due.DaysUntil(now))

	past := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, -3, due.DaysUntil(past))

	sameDay := time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, due.DaysUntil(sameDay))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-03-10")
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-10"`, string(raw))

	var parsed Date
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, d, parsed)

	var empty Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.True(t, empty.IsZero())
}
