package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"learn-track-system/models"

	"github.com/redis/go-redis/v9"
)

// PlaylistCache keeps recent playlist listings in Redis so dashboard reads do
// not hammer the catalog provider. A nil cache (or nil client) disables
// caching; every failure falls through to a direct fetch.
type PlaylistCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewPlaylistCache(client *redis.Client) *PlaylistCache {
	return &PlaylistCache{
		Client: client,
		TTL:    15 * time.Minute,
	}
}

func (c *PlaylistCache) Get(ctx context.Context, playlistID string) ([]models.Video, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	val, err := c.Client.Get(ctx, "playlist:"+playlistID).Result()
	if err != nil {
		return nil, false
	}
	var videos []models.Video
	if err := json.Unmarshal([]byte(val), &videos); err != nil {
		return nil, false
	}
	return videos, true
}

func (c *PlaylistCache) Set(ctx context.Context, playlistID string, videos []models.Video) {
	if c == nil || c.Client == nil {
		return
	}
	data, err := json.Marshal(videos)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, "playlist:"+playlistID, data, c.TTL).Err(); err != nil {
		log.Printf("[Cache] Failed to cache playlist %s: %v", playlistID, err)
	}
}
