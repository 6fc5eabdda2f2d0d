package services

import (
	"log"
	"math"
	"sync"
	"time"

	"learn-track-system/models"
	"learn-track-system/storage"
)

// ProgressService is the only writer to progress records and the read-side
// aggregator. All derived values are recomputed from the store on every read.
type ProgressService struct {
	Store storage.ProgressStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	now func() time.Time
}

func NewProgressService(store storage.ProgressStore) *ProgressService {
	return &ProgressService{
		Store: store,
		locks: make(map[string]*sync.Mutex),
		now:   time.Now,
	}
}

// keyLock serializes the read-modify-write inside RecordWatch per
// (user, subject) key so concurrent watch reports cannot lose an update.
func (s *ProgressService) keyLock(userID, subjectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userID + "/" + subjectID
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// RecordWatch records a watch event: videoID joins the completed set at most
// once, watchedSeconds is added unconditionally. Completion counts distinct
// videos; watch time counts cumulative viewing, repeats included.
//
// Best-effort telemetry write: invalid input is ignored and persistence
// failures are logged, never surfaced to the playback path.
func (s *ProgressService) RecordWatch(userID, subjectID, videoID string, watchedSeconds int) {
	if userID == "" || subjectID == "" || videoID == "" || watchedSeconds < 0 {
		log.Printf("[Progress] Ignoring invalid watch event: user=%q subject=%q video=%q seconds=%d",
			userID, subjectID, videoID, watchedSeconds)
		return
	}

	l := s.keyLock(userID, subjectID)
	l.Lock()
	defer l.Unlock()

	rec, err := s.Store.GetProgress(userID, subjectID)
	if err != nil {
		log.Printf("[Progress] Read failed for %s/%s, starting from zero: %v", userID, subjectID, err)
		rec = nil
	}
	if rec == nil {
		rec = &models.SubjectProgress{
			UserID:          userID,
			SubjectID:       subjectID,
			CompletedVideos: []string{},
		}
	}

	if !rec.HasCompleted(videoID) {
		rec.CompletedVideos = append(rec.CompletedVideos, videoID)
	}
	rec.TotalWatchTime += int64(watchedSeconds)
	rec.LastWatched = s.now().UTC()

	if err := s.Store.PutProgress(rec); err != nil {
		log.Printf("[Progress] Failed to persist %s/%s: %v", userID, subjectID, err)
		return
	}
	if err := s.Store.RecordActivity(userID, rec.LastWatched); err != nil {
		log.Printf("[Progress] Failed to mark activity for %s: %v", userID, err)
	}
}

// SubjectCompletion returns round(100 * completed / totalVideos). The result
// is deliberately not clamped: a stale (too small) total can push it past 100,
// and presentation layers clamp for display.
func (s *ProgressService) SubjectCompletion(userID, subjectID string, totalVideos int) int {
	if totalVideos == 0 {
		return 0
	}
	rec, err := s.Store.GetProgress(userID, subjectID)
	if err != nil {
		log.Printf("[Progress] Read failed for %s/%s: %v", userID, subjectID, err)
		return 0
	}
	if rec == nil {
		return 0
	}
	return int(math.Round(float64(len(rec.CompletedVideos)) * 100 / float64(totalVideos)))
}

// AggregateStats folds over all of one user's records. Zero values on an
// empty or unreadable store.
func (s *ProgressService) AggregateStats(userID string) models.AggregateStats {
	all, err := s.Store.GetAllProgress(userID)
	if err != nil {
		log.Printf("[Progress] Aggregate read failed for %s, reporting zero stats: %v", userID, err)
		return models.AggregateStats{}
	}

	var totalSeconds int64
	var completed int
	var lastActivity *time.Time
	for _, rec := range all {
		totalSeconds += rec.TotalWatchTime
		completed += len(rec.CompletedVideos)
		if lastActivity == nil || rec.LastWatched.After(*lastActivity) {
			t := rec.LastWatched
			lastActivity = &t
		}
	}

	return models.AggregateStats{
		TotalWatchTimeMinutes: int(math.Round(float64(totalSeconds) / 60)),
		CompletedVideosCount:  completed,
		LastActivityAt:        lastActivity,
	}
}

// AllProgress returns every record for the user, keyed by subject id.
func (s *ProgressService) AllProgress(userID string) map[string]*models.SubjectProgress {
	all, err := s.Store.GetAllProgress(userID)
	if err != nil {
		log.Printf("[Progress] Read failed for %s, reporting empty progress: %v", userID, err)
		return map[string]*models.SubjectProgress{}
	}
	return all
}

// ResetSubject deletes one record, returning the subject to zero progress.
func (s *ProgressService) ResetSubject(userID, subjectID string) error {
	l := s.keyLock(userID, subjectID)
	l.Lock()
	defer l.Unlock()
	return s.Store.DeleteProgress(userID, subjectID)
}

// CurrentStreak derives the user's consecutive-day streak from the activity
// log. Zero when the log is empty or unreadable.
func (s *ProgressService) CurrentStreak(userID string) int {
	dates, err := s.Store.ActivityDates(userID)
	if err != nil {
		log.Printf("[Progress] Activity read failed for %s: %v", userID, err)
		return 0
	}
	return StreakDays(dates, s.now())
}
