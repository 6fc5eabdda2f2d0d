// handlers/progress_routes.go
package handlers

import (
	"learn-track-system/middleware"
	"learn-track-system/models"
	"learn-track-system/services"
	"learn-track-system/storage"

	"github.com/gofiber/fiber/v2"
)

// Single watch report is capped here at the edge; the service trusts its
// caller on the magnitude of one increment.
const maxWatchSecondsPerCall = 4 * 3600

func SetupProgressRoutes(app *fiber.App, progressService *services.ProgressService, subjectService *services.SubjectService) {
	// 🔐 Secured routes — require user context forwarded by the Gateway
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	// The playback observer reports here every time watched fraction advances
	// and once on end-of-video.
	securedGroup.Post("/s/user/progress/watch", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			SubjectID      string `json:"subject_id"`
			VideoID        string `json:"video_id"`
			WatchedSeconds int    `json:"watched_seconds"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.WatchedSeconds > maxWatchSecondsPerCall {
			req.WatchedSeconds = maxWatchSecondsPerCall
		}

		progressService.RecordWatch(userID, req.SubjectID, req.VideoID, req.WatchedSeconds)
		return c.SendStatus(fiber.StatusAccepted)
	})

	securedGroup.Get("/s/user/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		allProgress := progressService.AllProgress(userID)
		stats := progressService.AggregateStats(userID)

		var subjects []fiber.Map
		for _, sub := range subjectService.SubjectsWithCounts() {
			rec := allProgress[sub.Subject.ID]
			if rec == nil {
				// Absence means zero progress, never an error.
				rec = &models.SubjectProgress{
					UserID:          userID,
					SubjectID:       sub.Subject.ID,
					CompletedVideos: []string{},
				}
			}
			pct := progressService.SubjectCompletion(userID, sub.Subject.ID, sub.VideoCount)
			if pct > 100 {
				// Display-layer clamp for stale catalog counts.
				pct = 100
			}
			subjects = append(subjects, fiber.Map{
				"subject_id":            sub.Subject.ID,
				"title":                 sub.Subject.Title,
				"video_count":           sub.VideoCount,
				"completed_videos":      rec.CompletedVideos,
				"total_watch_time":      rec.TotalWatchTime,
				"last_watched":          rec.LastWatched,
				"completion_percentage": pct,
			})
		}

		return c.JSON(fiber.Map{
			"subjects": subjects,
			"stats":    stats,
		})
	})

	securedGroup.Get("/s/user/progress/:subjectId", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		subjectID := c.Params("subjectId")

		rec := progressService.AllProgress(userID)[subjectID]
		if rec == nil {
			rec = &models.SubjectProgress{
				UserID:          userID,
				SubjectID:       subjectID,
				CompletedVideos: []string{},
			}
		}
		return c.JSON(fiber.Map{
			"progress":              rec,
			"completion_percentage": progressService.SubjectCompletion(userID, subjectID, subjectService.VideoCount(subjectID)),
		})
	})

	securedGroup.Delete("/s/user/progress/:subjectId", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		subjectID := c.Params("subjectId")

		if err := progressService.ResetSubject(userID, subjectID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to reset progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"message":    "progress reset",
			"subject_id": subjectID,
		})
	})

	securedGroup.Get("/s/user/stats", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		return c.JSON(progressService.AggregateStats(userID))
	})

	securedGroup.Get("/s/user/achievements", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		achievements := services.EvaluateAchievements(
			subjectService.SubjectsWithCounts(),
			progressService.AllProgress(userID),
			progressService.AggregateStats(userID),
			progressService.CurrentStreak(userID),
		)

		unlocked := 0
		for _, a := range achievements {
			if a.IsUnlocked {
				unlocked++
			}
		}
		return c.JSON(fiber.Map{
			"achievements":   achievements,
			"unlocked_count": unlocked,
			"total_count":    len(achievements),
		})
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware())

	adminGroup.Get("/progress/export", func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			userID = c.Locals("user_id").(string)
		}
		data, err := storage.Export(progressService.Store, userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to export progress",
				"cause": err.Error(),
			})
		}
		c.Set("Content-Type", "application/json")
		return c.Send(data)
	})

	adminGroup.Post("/progress/import", func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			userID = c.Locals("user_id").(string)
		}
		// Malformed payloads import zero records, logged but never rejected.
		imported := storage.Import(progressService.Store, userID, c.Body())
		return c.JSON(fiber.Map{
			"message":  "progress imported",
			"user_id":  userID,
			"imported": imported,
		})
	})
}
