package models

import "time"

// Video is a catalog descriptor owned by the provider. The core persists only
// the id; everything else is display data passed through to clients.
type Video struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	PublishedAt     time.Time `json:"published_at"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
}
