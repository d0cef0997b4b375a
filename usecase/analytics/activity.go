package analytics

import (
	"time"

	"github.com/studyzen/backend/domain"
)

// bucketActivity sums session minutes per UTC calendar day over the trailing
// window ending today. The result always has exactly windowDays entries in
// chronological order; days without sessions are synthesized with zero.
func bucketActivity(sessions []domain.StudySession, now time.Time, windowDays int) ([]domain.ActivityDay, int) {
	today := domain.NewDate(now)
	start := domain.NewDate(today.AddDate(0, 0, -(windowDays - 1)))

	byDay := minutesByDay(sessions)

	activity := make([]domain.ActivityDay, 0, windowDays)
	total := 0
	for d := 0; d < windowDays; d++ {
		day := domain.NewDate(start.AddDate(0, 0, d))
		minutes := byDay[day.String()]
		total += minutes
		activity = append(activity, domain.ActivityDay{
			Date:    day.String(),
			Minutes: minutes,
		})
	}
	return activity, total
}

// studyStreak counts consecutive days with recorded minutes, walking
// backward from today. Today must itself have minutes for the streak to be
// alive; an empty today means zero, with no grace through yesterday.
func studyStreak(sessions []domain.StudySession, now time.Time) int {
	byDay := minutesByDay(sessions)
	today := domain.NewDate(now)

	streak := 0
	for d := 0; ; d++ {
		day := domain.NewDate(today.AddDate(0, 0, -d))
		if byDay[day.String()] <= 0 {
			break
		}
		streak++
	}
	return streak
}

// minutesByDay buckets stopped-session minutes by the UTC day the session
// started. Sessions still running contribute nothing.
func minutesByDay(sessions []domain.StudySession) map[string]int {
	byDay := make(map[string]int, len(sessions))
	for _, s := range sessions {
		if s.EndedAt == nil {
			continue
		}
		day := domain.NewDate(s.StartedAt).String()
		byDay[day] += s.Minutes
	}
	return byDay
}
