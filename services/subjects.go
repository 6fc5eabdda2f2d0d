package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"learn-track-system/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubjectService serves the course catalog: the built-in subjects, admin
// registered ones, and their playlist listings from the catalog provider.
type SubjectService struct {
	DB      *gorm.DB
	YouTube *YouTubeClient
	Cache   *PlaylistCache
}

func NewSubjectService(db *gorm.DB, yt *YouTubeClient, cache *PlaylistCache) *SubjectService {
	return &SubjectService{DB: db, YouTube: yt, Cache: cache}
}

// ListSubjects returns the built-in catalog followed by custom subjects.
func (s *SubjectService) ListSubjects() []models.Subject {
	subjects := append([]models.Subject(nil), models.BuiltinSubjects...)
	if s.DB != nil {
		var custom []models.Subject
		if err := s.DB.Where("custom = ?", true).Order("created_at ASC").Find(&custom).Error; err != nil {
			log.Printf("[Subjects] Failed to load custom subjects: %v", err)
		} else {
			subjects = append(subjects, custom...)
		}
	}
	return subjects
}

func (s *SubjectService) GetSubject(id string) *models.Subject {
	for i := range models.BuiltinSubjects {
		if models.BuiltinSubjects[i].ID == id {
			sub := models.BuiltinSubjects[i]
			return &sub
		}
	}
	if s.DB != nil {
		var sub models.Subject
		err := s.DB.Where("id = ? AND custom = ?", id, true).First(&sub).Error
		if err == nil {
			return &sub
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Subjects] Lookup failed for %s: %v", id, err)
		}
	}
	return nil
}

// CreateSubject registers a custom subject. The id is the slugified title, so
// it stays stable and URL-safe ("Go Basics" -> "go-basics").
func (s *SubjectService) CreateSubject(title, description, icon, playlistID string) (*models.Subject, error) {
	if title == "" || playlistID == "" {
		return nil, fmt.Errorf("title and playlist_id are required")
	}
	if s.DB == nil {
		return nil, fmt.Errorf("custom subjects require a database")
	}
	id := slug.Make(title)
	if s.GetSubject(id) != nil {
		return nil, fmt.Errorf("subject %q already exists", id)
	}
	sub := &models.Subject{
		ID:          id,
		Title:       title,
		Description: description,
		Icon:        icon,
		PlaylistID:  playlistID,
		Custom:      true,
	}
	if err := s.DB.Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// SubjectVideos returns the subject's playlist listing, from cache when
// possible. A provider failure yields an empty list, never an error.
func (s *SubjectService) SubjectVideos(ctx context.Context, subjectID string) []models.Video {
	sub := s.GetSubject(subjectID)
	if sub == nil || s.YouTube == nil {
		return []models.Video{}
	}
	if videos, ok := s.Cache.Get(ctx, sub.PlaylistID); ok {
		return videos
	}
	videos, err := s.YouTube.FetchPlaylistVideos(ctx, sub.PlaylistID)
	if err != nil {
		log.Printf("[Subjects] Playlist fetch failed for %s: %v", subjectID, err)
		return []models.Video{}
	}
	s.Cache.Set(ctx, sub.PlaylistID, videos)
	return videos
}

// VideoCount is the last-known playlist size from the sync cache, so
// completion math keeps working while the provider is unreachable. Zero for a
// subject that has never been synced.
func (s *SubjectService) VideoCount(subjectID string) int {
	if s.DB == nil {
		return 0
	}
	var row models.PlaylistCountCache
	err := s.DB.Where("subject_id = ?", subjectID).First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Subjects] Count lookup failed for %s: %v", subjectID, err)
		}
		return 0
	}
	return row.VideoCount
}

// SubjectsWithCounts is the catalog view the achievement evaluator consumes.
func (s *SubjectService) SubjectsWithCounts() []SubjectWithVideoCount {
	subjects := s.ListSubjects()
	out := make([]SubjectWithVideoCount, 0, len(subjects))
	for _, sub := range subjects {
		out = append(out, SubjectWithVideoCount{
			Subject:    sub,
			VideoCount: s.VideoCount(sub.ID),
		})
	}
	return out
}

// SubjectResources returns the static resource list for a subject.
func (s *SubjectService) SubjectResources(subjectID string) []models.Resource {
	if resources, ok := models.BuiltinResources[subjectID]; ok {
		return resources
	}
	return []models.Resource{}
}

// RefreshVideoCounts fetches every subject's playlist and upserts the
// last-known video counts. A failed fetch keeps the previous count.
func (s *SubjectService) RefreshVideoCounts(ctx context.Context) error {
	if s.DB == nil || s.YouTube == nil {
		return nil
	}
	for _, sub := range s.ListSubjects() {
		videos, err := s.YouTube.FetchPlaylistVideos(ctx, sub.PlaylistID)
		if err != nil {
			log.Printf("[Catalog] Keeping previous count for %s: %v", sub.ID, err)
			continue
		}
		row := models.PlaylistCountCache{
			SubjectID:  sub.ID,
			PlaylistID: sub.PlaylistID,
			VideoCount: len(videos),
			SyncedAt:   time.Now().UTC(),
		}
		if err := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject_id"}},
			UpdateAll: true,
		}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
