package storage

import (
	"encoding/json"
	"testing"
	"time"

	"learn-track-system/models"
)

func TestMemoryStoreMissingKeyIsNotAnError(t *testing.T) {
	store := NewMemoryStore()

	rec, err := store.GetProgress("u1", "csharp")
	if err != nil {
		t.Fatalf("GetProgress returned error for missing key: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record for missing key, got %+v", rec)
	}

	all, err := store.GetAllProgress("u1")
	if err != nil {
		t.Fatalf("GetAllProgress returned error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty mapping on uninitialized store, got %d entries", len(all))
	}
}

func TestMemoryStorePutIsFullReplace(t *testing.T) {
	store := NewMemoryStore()

	first := &models.SubjectProgress{
		UserID:          "u1",
		SubjectID:       "csharp",
		CompletedVideos: []string{"v1", "v2"},
		TotalWatchTime:  600,
	}
	if err := store.PutProgress(first); err != nil {
		t.Fatalf("PutProgress: %v", err)
	}

	second := &models.SubjectProgress{
		UserID:          "u1",
		SubjectID:       "csharp",
		CompletedVideos: []string{"v1"},
		TotalWatchTime:  900,
	}
	if err := store.PutProgress(second); err != nil {
		t.Fatalf("PutProgress: %v", err)
	}

	rec, _ := store.GetProgress("u1", "csharp")
	if rec.TotalWatchTime != 900 {
		t.Fatalf("expected last-writer-wins watch time 900, got %d", rec.TotalWatchTime)
	}
	if len(rec.CompletedVideos) != 1 {
		t.Fatalf("expected full-record replace, got %v", rec.CompletedVideos)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	rec := &models.SubjectProgress{
		UserID:          "u1",
		SubjectID:       "csharp",
		CompletedVideos: []string{"v1"},
	}
	if err := store.PutProgress(rec); err != nil {
		t.Fatalf("PutProgress: %v", err)
	}

	got, _ := store.GetProgress("u1", "csharp")
	got.CompletedVideos = append(got.CompletedVideos, "v2")

	again, _ := store.GetProgress("u1", "csharp")
	if len(again.CompletedVideos) != 1 {
		t.Fatalf("mutating a returned record leaked into the store: %v", again.CompletedVideos)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := NewMemoryStore()
	last := time.Date(2026, 8, 20, 12, 30, 0, 0, time.UTC)
	records := []*models.SubjectProgress{
		{UserID: "u1", SubjectID: "csharp", CompletedVideos: []string{"v1", "v2"}, TotalWatchTime: 900, LastWatched: last},
		{UserID: "u1", SubjectID: "blazor", CompletedVideos: []string{"b1"}, TotalWatchTime: 120, LastWatched: last.Add(time.Hour)},
	}
	for _, rec := range records {
		if err := src.PutProgress(rec); err != nil {
			t.Fatalf("PutProgress: %v", err)
		}
	}

	data, err := Export(src, "u1")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := NewMemoryStore()
	if n := Import(dst, "u1", data); n != len(records) {
		t.Fatalf("expected %d imported records, got %d", len(records), n)
	}

	for _, want := range records {
		got, _ := dst.GetProgress("u1", want.SubjectID)
		if got == nil {
			t.Fatalf("record %s missing after round trip", want.SubjectID)
		}
		if got.UserID != want.UserID || got.SubjectID != want.SubjectID {
			t.Fatalf("key mismatch: got %s/%s", got.UserID, got.SubjectID)
		}
		if got.TotalWatchTime != want.TotalWatchTime {
			t.Fatalf("%s: watch time %d != %d", want.SubjectID, got.TotalWatchTime, want.TotalWatchTime)
		}
		if len(got.CompletedVideos) != len(want.CompletedVideos) {
			t.Fatalf("%s: completed %v != %v", want.SubjectID, got.CompletedVideos, want.CompletedVideos)
		}
		for i := range want.CompletedVideos {
			if got.CompletedVideos[i] != want.CompletedVideos[i] {
				t.Fatalf("%s: completed order changed: %v != %v", want.SubjectID, got.CompletedVideos, want.CompletedVideos)
			}
		}
		if !got.LastWatched.Equal(want.LastWatched) {
			t.Fatalf("%s: lastWatched %v != %v", want.SubjectID, got.LastWatched, want.LastWatched)
		}
	}
}

func TestExportLayoutIsKeyedBySubject(t *testing.T) {
	store := NewMemoryStore()
	rec := &models.SubjectProgress{
		UserID:          "current-user",
		SubjectID:       "csharp",
		CompletedVideos: []string{"v1"},
		TotalWatchTime:  60,
		LastWatched:     time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
	if err := store.PutProgress(rec); err != nil {
		t.Fatalf("PutProgress: %v", err)
	}

	data, err := Export(store, "current-user")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var layout map[string]map[string]any
	if err := json.Unmarshal(data, &layout); err != nil {
		t.Fatalf("export is not a subjectId-keyed object: %v", err)
	}
	entry, ok := layout["csharp"]
	if !ok {
		t.Fatalf("expected csharp key, got %v", layout)
	}
	for _, field := range []string{"userId", "subjectId", "completedVideos", "totalWatchTime", "lastWatched"} {
		if _, ok := entry[field]; !ok {
			t.Fatalf("export entry missing %q: %v", field, entry)
		}
	}
}

func TestImportMalformedPayloadFailsOpen(t *testing.T) {
	store := NewMemoryStore()
	if n := Import(store, "u1", []byte("{not json")); n != 0 {
		t.Fatalf("expected zero imports from malformed payload, got %d", n)
	}
	all, _ := store.GetAllProgress("u1")
	if len(all) != 0 {
		t.Fatalf("malformed payload must leave the store empty, got %d entries", len(all))
	}
}

func TestActivityDedupAndPrune(t *testing.T) {
	store := NewMemoryStore()
	noon := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	for _, at := range []time.Time{noon, noon.Add(2 * time.Hour), noon.AddDate(0, 0, -1)} {
		if err := store.RecordActivity("u1", at); err != nil {
			t.Fatalf("RecordActivity: %v", err)
		}
	}

	dates, err := store.ActivityDates("u1")
	if err != nil {
		t.Fatalf("ActivityDates: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected 2 deduplicated days, got %d", len(dates))
	}

	if err := store.PruneActivity(noon); err != nil {
		t.Fatalf("PruneActivity: %v", err)
	}
	dates, _ = store.ActivityDates("u1")
	if len(dates) != 1 {
		t.Fatalf("expected 1 day after prune, got %d", len(dates))
	}
}
