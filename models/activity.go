package models

import "time"

// ActivityDay marks that a user had learning activity on one calendar day
// (UTC). Deduplicated per (user, day); streaks are derived from these rows.
type ActivityDay struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"uniqueIndex:idx_user_day;not null" json:"user_id"`

	// Day in YYYY-MM-DD form, UTC.
	Day string `gorm:"uniqueIndex:idx_user_day;not null" json:"day"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// DayKey formats t as the canonical UTC calendar-day key.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
