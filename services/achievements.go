package services

import (
	"learn-track-system/models"
)

// SubjectWithVideoCount pairs a subject with its last-known catalog size.
type SubjectWithVideoCount struct {
	Subject    models.Subject
	VideoCount int
}

// EvaluateAchievements maps current state onto the fixed definition table.
// Pure and side-effect free; nothing about unlocks is persisted, the booleans
// are recomputed on every call.
func EvaluateAchievements(
	subjects []SubjectWithVideoCount,
	progress map[string]*models.SubjectProgress,
	stats models.AggregateStats,
	streakDays int,
) []models.Achievement {
	completedCourses := 0
	for _, sub := range subjects {
		// A subject with no known videos can never count as completed.
		if sub.VideoCount <= 0 {
			continue
		}
		rec := progress[sub.Subject.ID]
		if rec == nil {
			continue
		}
		if len(rec.CompletedVideos) >= sub.VideoCount {
			completedCourses++
		}
	}

	// Fractional hours: the 1-hour threshold unlocks at minute 60 exactly.
	watchHours := float64(stats.TotalWatchTimeMinutes) / 60

	out := make([]models.Achievement, 0, len(models.AchievementDefs))
	for _, def := range models.AchievementDefs {
		required := def.RequiredValue
		if def.AllCourses {
			required = float64(len(subjects))
		}

		var current float64
		switch def.Metric {
		case models.MetricCompletedCourses:
			current = float64(completedCourses)
		case models.MetricWatchHours:
			current = watchHours
		case models.MetricCompletedVideos:
			current = float64(stats.CompletedVideosCount)
		case models.MetricStreakDays:
			current = float64(streakDays)
		}

		out = append(out, models.Achievement{
			ID:            def.ID,
			Title:         def.Title,
			Description:   def.Description,
			Category:      def.Category,
			RequiredValue: required,
			CurrentValue:  current,
			IsUnlocked:    current >= required,
		})
	}
	return out
}
