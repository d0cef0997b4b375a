package domain

import "strconv"

// ActivityDay is one calendar-day bucket of recorded study minutes.
type ActivityDay struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// Summary is the rolling-activity view returned by the summary endpoint.
// RecentActivity always holds exactly WindowDays entries, ascending,
// ending at today.
type Summary struct {
	WindowDays     int           `json:"window_days"`
	WindowMins     int           `json:"window_mins"`
	Streak         int           `json:"streak"`
	RecentActivity []ActivityDay `json:"recent_activity"`
	DueSoon        []DueTask     `json:"due_soon"`
}

// DueTask is the lightweight task projection shown in the due-soon list.
type DueTask struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	DueDate  Date   `json:"due_date"`
	Priority int    `json:"priority"`
	TopicID  string `json:"topic_id"`
}

// Score is a blueprint score. It marshals with fixed six-decimal precision
// so equal scores render identically across runs.
type Score float64

func (s Score) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(s), 'f', 6, 64)), nil
}

// RankedTask is one blueprint entry: the task plus its composite score.
type RankedTask struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Priority int    `json:"priority"`
	Status   Status `json:"status"`
	DueDate  *Date  `json:"due_date"`
	TopicID  string `json:"topic_id"`
	Score    Score  `json:"score"`
}
