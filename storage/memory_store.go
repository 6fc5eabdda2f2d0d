package storage

import (
	"sync"
	"time"

	"learn-track-system/models"
)

// MemoryStore is a map-backed ProgressStore for tests and database-less runs.
type MemoryStore struct {
	mu       sync.RWMutex
	progress map[string]map[string]*models.SubjectProgress // userID -> subjectID -> record
	activity map[string]map[string]struct{}                // userID -> day key
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		progress: make(map[string]map[string]*models.SubjectProgress),
		activity: make(map[string]map[string]struct{}),
	}
}

func copyRecord(rec *models.SubjectProgress) *models.SubjectProgress {
	cp := *rec
	cp.CompletedVideos = append([]string(nil), rec.CompletedVideos...)
	return &cp
}

func (s *MemoryStore) GetProgress(userID, subjectID string) (*models.SubjectProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.progress[userID][subjectID]
	if !ok {
		return nil, nil
	}
	return copyRecord(rec), nil
}

func (s *MemoryStore) GetAllProgress(userID string) (map[string]*models.SubjectProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make(map[string]*models.SubjectProgress, len(s.progress[userID]))
	for subjectID, rec := range s.progress[userID] {
		all[subjectID] = copyRecord(rec)
	}
	return all, nil
}

func (s *MemoryStore) PutProgress(rec *models.SubjectProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.progress[rec.UserID] == nil {
		s.progress[rec.UserID] = make(map[string]*models.SubjectProgress)
	}
	s.progress[rec.UserID][rec.SubjectID] = copyRecord(rec)
	return nil
}

func (s *MemoryStore) DeleteProgress(userID, subjectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.progress[userID], subjectID)
	return nil
}

func (s *MemoryStore) RecordActivity(userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activity[userID] == nil {
		s.activity[userID] = make(map[string]struct{})
	}
	s.activity[userID][models.DayKey(at)] = struct{}{}
	return nil
}

func (s *MemoryStore) ActivityDates(userID string) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dates := make([]time.Time, 0, len(s.activity[userID]))
	for key := range s.activity[userID] {
		d, err := time.Parse("2006-01-02", key)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func (s *MemoryStore) PruneActivity(before time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := models.DayKey(before)
	for _, days := range s.activity {
		for key := range days {
			if key < cutoff {
				delete(days, key)
			}
		}
	}
	return nil
}
