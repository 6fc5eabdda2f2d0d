package services

import (
	"time"

	"learn-track-system/models"
)

// StreakDays returns the length of the run of consecutive activity days
// ending today or yesterday (UTC). A streak whose last activity was yesterday
// stays alive until today's midnight passes without activity.
func StreakDays(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	days := make(map[string]bool, len(dates))
	for _, d := range dates {
		days[models.DayKey(d)] = true
	}

	cursor := today.UTC()
	if !days[models.DayKey(cursor)] {
		cursor = cursor.AddDate(0, 0, -1)
		if !days[models.DayKey(cursor)] {
			return 0
		}
	}

	streak := 0
	for days[models.DayKey(cursor)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}
