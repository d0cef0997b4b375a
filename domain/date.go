package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date wire format used for due dates and
// activity buckets.
const DateLayout = "2006-01-02"

// Date is a calendar day without a time component. It marshals as
// "YYYY-MM-DD" and always normalizes to midnight UTC.
type Date struct {
	time.Time
}

// NewDate truncates t to its UTC calendar day.
func NewDate(t time.Time) Date {
	u := t.UTC()
	return Date{Time: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, WrapError(ErrCodeInvalid, "date must be YYYY-MM-DD", err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// DaysUntil returns the whole calendar days from ref's day to d.
// Negative when d lies in the past.
func (d Date) DaysUntil(ref time.Time) int {
	return int(d.Sub(NewDate(ref).Time) / (24 * time.Hour))
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
