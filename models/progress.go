package models

import (
	"time"

	"gorm.io/gorm"
)

// SubjectProgress is the per-(user, subject) progress record. A row exists only
// after the first watch event for that subject; absence means zero progress.
// JSON tags match the export/import layout used by the backup endpoints.
type SubjectProgress struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"-"`
	UserID    string `gorm:"uniqueIndex:idx_user_subject;not null" json:"userId"`
	SubjectID string `gorm:"uniqueIndex:idx_user_subject;not null" json:"subjectId"`

	// CompletedVideos holds distinct video ids in first-completion order.
	CompletedVideos []string `gorm:"type:jsonb;serializer:json" json:"completedVideos"`

	// TotalWatchTime accumulates every reported watched second, including
	// repeated views of already-completed videos. Only ever increases.
	TotalWatchTime int64 `gorm:"default:0" json:"totalWatchTime"`

	LastWatched time.Time `json:"lastWatched"`

	Timestamps
}

// HasCompleted reports whether videoID is already in the completed set.
func (p *SubjectProgress) HasCompleted(videoID string) bool {
	for _, id := range p.CompletedVideos {
		if id == videoID {
			return true
		}
	}
	return false
}

// AggregateStats is derived on every read from all progress records of one
// user. Never stored.
type AggregateStats struct {
	TotalWatchTimeMinutes int        `json:"totalWatchTimeMinutes"`
	CompletedVideosCount  int        `json:"completedVideosCount"`
	LastActivityAt        *time.Time `json:"lastActivityAt,omitempty"`
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
