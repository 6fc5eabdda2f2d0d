package storage

import (
	"errors"
	"time"

	"learn-track-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps one row per (user, subject) in Postgres.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) GetProgress(userID, subjectID string) (*models.SubjectProgress, error) {
	var rec models.SubjectProgress
	err := s.DB.Where("user_id = ? AND subject_id = ?", userID, subjectID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) GetAllProgress(userID string) (map[string]*models.SubjectProgress, error) {
	var recs []models.SubjectProgress
	if err := s.DB.Where("user_id = ?", userID).Find(&recs).Error; err != nil {
		return nil, err
	}
	all := make(map[string]*models.SubjectProgress, len(recs))
	for i := range recs {
		all[recs[i].SubjectID] = &recs[i]
	}
	return all, nil
}

// PutProgress replaces the full record for its (user, subject) key.
// Last-writer-wins; the upsert is a single atomic statement.
func (s *GormStore) PutProgress(rec *models.SubjectProgress) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "subject_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed_videos", "total_watch_time", "last_watched", "updated_at",
		}),
	}).Create(rec).Error
}

func (s *GormStore) DeleteProgress(userID, subjectID string) error {
	return s.DB.Unscoped().
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Delete(&models.SubjectProgress{}).Error
}

func (s *GormStore) RecordActivity(userID string, at time.Time) error {
	day := models.ActivityDay{
		ID:     uuid.NewString(),
		UserID: userID,
		Day:    models.DayKey(at),
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoNothing: true,
	}).Create(&day).Error
}

func (s *GormStore) ActivityDates(userID string) ([]time.Time, error) {
	var rows []models.ActivityDay
	if err := s.DB.Where("user_id = ?", userID).Order("day ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		d, err := time.Parse("2006-01-02", row.Day)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func (s *GormStore) PruneActivity(before time.Time) error {
	return s.DB.Where("day < ?", models.DayKey(before)).Delete(&models.ActivityDay{}).Error
}
