package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"learn-track-system/models"
	"learn-track-system/services"
	"learn-track-system/storage"

	"github.com/gofiber/fiber/v2"
)

func newTestApp() (*fiber.App, *services.ProgressService) {
	app := fiber.New()
	progressService := services.NewProgressService(storage.NewMemoryStore())
	subjectService := services.NewSubjectService(nil, nil, nil)
	SetupProgressRoutes(app, progressService, subjectService)
	return app, progressService
}

func doJSON(t *testing.T, app *fiber.App, method, path, userID string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestSecuredRoutesRequireUserContext(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, "GET", "/s/user/progress", "", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without X-User-ID, got %d", resp.StatusCode)
	}
}

func TestWatchEventThenSubjectProgress(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, "POST", "/s/user/progress/watch", "u1", fiber.Map{
		"subject_id":      "csharp",
		"video_id":        "v1",
		"watched_seconds": 300,
	})
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("expected 202 for watch event, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/s/user/progress/csharp", "u1", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Progress models.SubjectProgress `json:"progress"`
		Pct      int                    `json:"completion_percentage"`
	}
	decodeBody(t, resp, &body)
	if body.Progress.TotalWatchTime != 300 {
		t.Fatalf("expected 300s watch time, got %d", body.Progress.TotalWatchTime)
	}
	if len(body.Progress.CompletedVideos) != 1 || body.Progress.CompletedVideos[0] != "v1" {
		t.Fatalf("unexpected completed list: %v", body.Progress.CompletedVideos)
	}
	// No synced playlist counts in this setup, so completion stays 0.
	if body.Pct != 0 {
		t.Fatalf("expected 0%% without a known video count, got %d", body.Pct)
	}
}

func TestSubjectProgressAbsentRecordIsZeroValued(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, "GET", "/s/user/progress/blazor", "u1", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for untouched subject, got %d", resp.StatusCode)
	}
	var body struct {
		Progress models.SubjectProgress `json:"progress"`
	}
	decodeBody(t, resp, &body)
	if body.Progress.TotalWatchTime != 0 || len(body.Progress.CompletedVideos) != 0 {
		t.Fatalf("expected zero-valued record, got %+v", body.Progress)
	}
	if body.Progress.CompletedVideos == nil {
		t.Fatal("completedVideos must serialize as [], not null")
	}
}

func TestProgressOverviewListsAllSubjects(t *testing.T) {
	app, _ := newTestApp()
	doJSON(t, app, "POST", "/s/user/progress/watch", "u1", fiber.Map{
		"subject_id": "csharp", "video_id": "v1", "watched_seconds": 120,
	})

	resp := doJSON(t, app, "GET", "/s/user/progress", "u1", nil)
	var body struct {
		Subjects []map[string]any      `json:"subjects"`
		Stats    models.AggregateStats `json:"stats"`
	}
	decodeBody(t, resp, &body)
	if len(body.Subjects) != len(models.BuiltinSubjects) {
		t.Fatalf("expected %d subjects in overview, got %d", len(models.BuiltinSubjects), len(body.Subjects))
	}
	if body.Stats.TotalWatchTimeMinutes != 2 {
		t.Fatalf("expected 2 minutes in stats, got %d", body.Stats.TotalWatchTimeMinutes)
	}
}

func TestMalformedWatchEventRejected(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest("POST", "/s/user/progress/watch", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.StatusCode)
	}
}

func TestResetSubjectEndpoint(t *testing.T) {
	app, svc := newTestApp()
	doJSON(t, app, "POST", "/s/user/progress/watch", "u1", fiber.Map{
		"subject_id": "csharp", "video_id": "v1", "watched_seconds": 600,
	})

	resp := doJSON(t, app, "DELETE", "/s/user/progress/csharp", "u1", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 from reset, got %d", resp.StatusCode)
	}
	if rec, _ := svc.Store.GetProgress("u1", "csharp"); rec != nil {
		t.Fatalf("expected record removed, got %+v", rec)
	}
}

func TestAchievementsEndpointCounts(t *testing.T) {
	app, _ := newTestApp()
	// 65 minutes of watching unlocks the first watch-time tier.
	doJSON(t, app, "POST", "/s/user/progress/watch", "u1", fiber.Map{
		"subject_id": "csharp", "video_id": "v1", "watched_seconds": 3900,
	})

	resp := doJSON(t, app, "GET", "/s/user/achievements", "u1", nil)
	var body struct {
		Achievements []models.Achievement `json:"achievements"`
		Unlocked     int                  `json:"unlocked_count"`
		Total        int                  `json:"total_count"`
	}
	decodeBody(t, resp, &body)
	if body.Total != len(models.AchievementDefs) {
		t.Fatalf("expected %d achievements, got %d", len(models.AchievementDefs), body.Total)
	}
	if body.Unlocked < 1 {
		t.Fatal("watch-1 should be unlocked after 65 minutes")
	}
}

func TestAdminExportImportRoundTrip(t *testing.T) {
	app, _ := newTestApp()
	doJSON(t, app, "POST", "/s/user/progress/watch", "u1", fiber.Map{
		"subject_id": "csharp", "video_id": "v1", "watched_seconds": 300,
	})

	resp := doJSON(t, app, "GET", "/s/admin/progress/export?user_id=u1", "admin", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 from export, got %d", resp.StatusCode)
	}
	exported, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	// Import the snapshot for a second user on the same app.
	req := httptest.NewRequest("POST", "/s/admin/progress/import?user_id=u2", bytes.NewReader(exported))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "admin")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	var result struct {
		Imported int `json:"imported"`
	}
	decodeBody(t, resp, &result)
	if result.Imported != 1 {
		t.Fatalf("expected 1 imported record, got %d", result.Imported)
	}

	resp = doJSON(t, app, "GET", "/s/user/progress/csharp", "u2", nil)
	var body struct {
		Progress models.SubjectProgress `json:"progress"`
	}
	decodeBody(t, resp, &body)
	if body.Progress.TotalWatchTime != 300 {
		t.Fatalf("imported record not visible for u2: %+v", body.Progress)
	}
}
