package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"learn-track-system/models"
	"learn-track-system/utils"
)

const DefaultYouTubeAPIURL = "https://www.googleapis.com/youtube/v3"

// YouTubeClient wraps the YouTube Data API v3 endpoints the catalog needs.
// BaseURL is injectable for tests.
type YouTubeClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewYouTubeClient(baseURL, apiKey string) *YouTubeClient {
	if baseURL == "" {
		baseURL = DefaultYouTubeAPIURL
	}
	return &YouTubeClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  utils.HTTPClient,
	}
}

type ytThumbnail struct {
	URL string `json:"url"`
}

type ytItem struct {
	// id is a plain string on the videos endpoint and an object on search.
	ID      json.RawMessage `json:"id"`
	Snippet struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		PublishedAt time.Time `json:"publishedAt"`
		Thumbnails  struct {
			Default ytThumbnail `json:"default"`
			High    ytThumbnail `json:"high"`
		} `json:"thumbnails"`
		ResourceID struct {
			VideoID string `json:"videoId"`
		} `json:"resourceId"`
	} `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

type ytListResponse struct {
	Items []ytItem `json:"items"`
}

func (it ytItem) videoID() string {
	if it.Snippet.ResourceID.VideoID != "" {
		return it.Snippet.ResourceID.VideoID
	}
	var s string
	if err := json.Unmarshal(it.ID, &s); err == nil {
		return s
	}
	var obj struct {
		VideoID string `json:"videoId"`
	}
	if err := json.Unmarshal(it.ID, &obj); err == nil {
		return obj.VideoID
	}
	return ""
}

func (it ytItem) toVideo() models.Video {
	thumb := it.Snippet.Thumbnails.High.URL
	if thumb == "" {
		thumb = it.Snippet.Thumbnails.Default.URL
	}
	return models.Video{
		ID:              it.videoID(),
		Title:           it.Snippet.Title,
		Description:     it.Snippet.Description,
		ThumbnailURL:    thumb,
		PublishedAt:     it.Snippet.PublishedAt,
		DurationSeconds: ParseISODuration(it.ContentDetails.Duration),
	}
}

func (c *YouTubeClient) get(ctx context.Context, endpoint string, params url.Values) (*ytListResponse, error) {
	params.Set("key", c.APIKey)
	reqURL := fmt.Sprintf("%s/%s?%s", strings.TrimRight(c.BaseURL, "/"), endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call youtube %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("youtube %s returned status %d: %s", endpoint, resp.StatusCode, string(body))
	}

	var out ytListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode youtube %s response: %w", endpoint, err)
	}
	return &out, nil
}

// FetchPlaylistVideos lists a playlist (first 50 items, like the frontend ever
// requested) and joins in per-video durations. Callers treat an error as an
// empty playlist.
func (c *YouTubeClient) FetchPlaylistVideos(ctx context.Context, playlistID string) ([]models.Video, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("maxResults", "50")
	params.Set("playlistId", playlistID)

	resp, err := c.get(ctx, "playlistItems", params)
	if err != nil {
		return nil, err
	}

	videos := make([]models.Video, 0, len(resp.Items))
	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		v := item.toVideo()
		if v.ID == "" {
			continue
		}
		videos = append(videos, v)
		ids = append(ids, v.ID)
	}
	if len(ids) == 0 {
		return videos, nil
	}

	// Second call for durations; playlistItems snippets do not carry them.
	params = url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", strings.Join(ids, ","))
	details, err := c.get(ctx, "videos", params)
	if err != nil {
		// Durations are optional metadata; the listing is still usable.
		return videos, nil
	}

	durations := make(map[string]int, len(details.Items))
	for _, item := range details.Items {
		durations[item.videoID()] = ParseISODuration(item.ContentDetails.Duration)
	}
	for i := range videos {
		videos[i].DurationSeconds = durations[videos[i].ID]
	}
	return videos, nil
}

// FetchVideoByID returns a single descriptor, or nil when the id is unknown.
func (c *YouTubeClient) FetchVideoByID(ctx context.Context, videoID string) (*models.Video, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", videoID)

	resp, err := c.get(ctx, "videos", params)
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	v := resp.Items[0].toVideo()
	return &v, nil
}

// SearchVideos searches for videos, optionally restricted to a channel.
func (c *YouTubeClient) SearchVideos(ctx context.Context, query, channelID string) ([]models.Video, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("maxResults", "20")
	params.Set("q", query)
	params.Set("type", "video")
	if channelID != "" {
		params.Set("channelId", channelID)
	}

	resp, err := c.get(ctx, "search", params)
	if err != nil {
		return nil, err
	}
	videos := make([]models.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		v := item.toVideo()
		if v.ID == "" {
			continue
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// ParseISODuration converts an ISO-8601 duration as returned by the API
// (PT1H2M30S) to seconds. Returns 0 for anything unparsable.
func ParseISODuration(iso string) int {
	if !strings.HasPrefix(iso, "P") {
		return 0
	}
	datePart, timePart, _ := strings.Cut(iso[1:], "T")

	total := 0
	num := 0
	for _, r := range datePart {
		if r >= '0' && r <= '9' {
			num = num*10 + int(r-'0')
			continue
		}
		switch r {
		case 'W':
			total += num * 7 * 86400
		case 'D':
			total += num * 86400
		}
		num = 0
	}
	num = 0
	for _, r := range timePart {
		if r >= '0' && r <= '9' {
			num = num*10 + int(r-'0')
			continue
		}
		switch r {
		case 'H':
			total += num * 3600
		case 'M':
			total += num * 60
		case 'S':
			total += num
		}
		num = 0
	}
	return total
}
