package models

// Achievement categories
const (
	CategoryCourse = "Course"
	CategoryWatch  = "Watch"
	CategoryStreak = "Streak"
)

// Metrics an achievement threshold is compared against
const (
	MetricCompletedCourses = "completed_courses"
	MetricWatchHours       = "watch_hours"
	MetricCompletedVideos  = "completed_videos"
	MetricStreakDays       = "streak_days"
)

// Achievement is a derived milestone state, re-evaluated on every read.
// Never persisted; "unlocking" is only the current boolean, not an event.
type Achievement struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	RequiredValue float64 `json:"required_value"`
	CurrentValue  float64 `json:"current_value"`
	IsUnlocked    bool    `json:"is_unlocked"`
}

// AchievementDef: static definition table (changing it is a data change).
type AchievementDef struct {
	ID            string
	Title         string
	Description   string
	Category      string
	Metric        string
	RequiredValue float64

	// AllCourses makes the required value track the live catalog size instead
	// of the static threshold.
	AllCourses bool
}

// AchievementDefs is ordered: Course, then Watch (hours, then videos), then
// Streak, each by ascending threshold. Evaluation preserves this order.
var AchievementDefs = []AchievementDef{
	{
		ID:            "course-1",
		Title:         "First Steps",
		Description:   "Complete your first course",
		Category:      CategoryCourse,
		Metric:        MetricCompletedCourses,
		RequiredValue: 1,
	},
	{
		ID:            "course-2",
		Title:         "Getting Serious",
		Description:   "Complete 3 courses",
		Category:      CategoryCourse,
		Metric:        MetricCompletedCourses,
		RequiredValue: 3,
	},
	{
		ID:          "course-3",
		Title:       "Academy Master",
		Description: "Complete all courses",
		Category:    CategoryCourse,
		Metric:      MetricCompletedCourses,
		AllCourses:  true,
	},
	{
		ID:            "watch-1",
		Title:         "Curious Mind",
		Description:   "Watch 1 hour of content",
		Category:      CategoryWatch,
		Metric:        MetricWatchHours,
		RequiredValue: 1,
	},
	{
		ID:            "watch-2",
		Title:         "Dedicated Learner",
		Description:   "Watch 5 hours of content",
		Category:      CategoryWatch,
		Metric:        MetricWatchHours,
		RequiredValue: 5,
	},
	{
		ID:            "watch-3",
		Title:         "Deep Diver",
		Description:   "Watch 10 hours of content",
		Category:      CategoryWatch,
		Metric:        MetricWatchHours,
		RequiredValue: 10,
	},
	{
		ID:            "video-1",
		Title:         "Getting Started",
		Description:   "Complete 5 videos",
		Category:      CategoryWatch,
		Metric:        MetricCompletedVideos,
		RequiredValue: 5,
	},
	{
		ID:            "video-2",
		Title:         "Consistent Learner",
		Description:   "Complete 25 videos",
		Category:      CategoryWatch,
		Metric:        MetricCompletedVideos,
		RequiredValue: 25,
	},
	{
		ID:            "video-3",
		Title:         "Video Virtuoso",
		Description:   "Complete 50 videos",
		Category:      CategoryWatch,
		Metric:        MetricCompletedVideos,
		RequiredValue: 50,
	},
	{
		ID:            "streak-1",
		Title:         "Daily Learner",
		Description:   "Learn for 3 days in a row",
		Category:      CategoryStreak,
		Metric:        MetricStreakDays,
		RequiredValue: 3,
	},
	{
		ID:            "streak-2",
		Title:         "Weekly Warrior",
		Description:   "Learn for 7 days in a row",
		Category:      CategoryStreak,
		Metric:        MetricStreakDays,
		RequiredValue: 7,
	},
	{
		ID:            "streak-3",
		Title:         "Unstoppable",
		Description:   "Learn for 30 days in a row",
		Category:      CategoryStreak,
		Metric:        MetricStreakDays,
		RequiredValue: 30,
	},
}
