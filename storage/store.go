package storage

import (
	"encoding/json"
	"log"
	"time"

	"learn-track-system/models"
)

// ProgressStore is the sole owner of persisted progress state.
//
// GetProgress returns (nil, nil) for a missing key: absence is zero progress,
// never an error. PutProgress is a full-record, last-writer-wins replace keyed
// by (user, subject). Activity rows are deduplicated per calendar day.
type ProgressStore interface {
	GetProgress(userID, subjectID string) (*models.SubjectProgress, error)
	GetAllProgress(userID string) (map[string]*models.SubjectProgress, error)
	PutProgress(rec *models.SubjectProgress) error
	DeleteProgress(userID, subjectID string) error

	RecordActivity(userID string, at time.Time) error
	ActivityDates(userID string) ([]time.Time, error)
	PruneActivity(before time.Time) error
}

// Export serializes one user's progress as the backup layout:
// subjectId -> full record.
func Export(s ProgressStore, userID string) ([]byte, error) {
	all, err := s.GetAllProgress(userID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(all)
}

// Import loads a backup payload into the store. A malformed payload is treated
// as empty: logged and skipped, never surfaced to the caller.
func Import(s ProgressStore, userID string, data []byte) int {
	var all map[string]*models.SubjectProgress
	if err := json.Unmarshal(data, &all); err != nil {
		log.Printf("[Store] Discarding malformed progress payload for %s: %v", userID, err)
		return 0
	}

	imported := 0
	for subjectID, rec := range all {
		if rec == nil {
			continue
		}
		rec.UserID = userID
		rec.SubjectID = subjectID
		if rec.CompletedVideos == nil {
			rec.CompletedVideos = []string{}
		}
		if err := s.PutProgress(rec); err != nil {
			log.Printf("[Store] Failed to import progress for %s/%s: %v", userID, subjectID, err)
			continue
		}
		imported++
	}
	return imported
}
