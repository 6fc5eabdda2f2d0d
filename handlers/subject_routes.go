// handlers/subject_routes.go
package handlers

import (
	"fmt"
	"path/filepath"

	"learn-track-system/middleware"
	"learn-track-system/services"
	"learn-track-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupSubjectRoutes(app *fiber.App, subjectService *services.SubjectService) {
	app.Get("/subjects", func(c *fiber.Ctx) error {
		var out []fiber.Map
		for _, sub := range subjectService.SubjectsWithCounts() {
			out = append(out, fiber.Map{
				"id":          sub.Subject.ID,
				"title":       sub.Subject.Title,
				"description": sub.Subject.Description,
				"icon":        sub.Subject.Icon,
				"playlist_id": sub.Subject.PlaylistID,
				"video_count": sub.VideoCount,
			})
		}
		return c.JSON(out)
	})

	app.Get("/subjects/:id", func(c *fiber.Ctx) error {
		sub := subjectService.GetSubject(c.Params("id"))
		if sub == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "subject not found",
			})
		}
		return c.JSON(sub)
	})

	// Provider failures come back as an empty list, never an error.
	app.Get("/subjects/:id/videos", func(c *fiber.Ctx) error {
		return c.JSON(subjectService.SubjectVideos(c.Context(), c.Params("id")))
	})

	app.Get("/subjects/:id/resources", func(c *fiber.Ctx) error {
		return c.JSON(subjectService.SubjectResources(c.Params("id")))
	})

	app.Get("/videos/search", func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "q is required",
			})
		}
		if subjectService.YouTube == nil {
			return c.JSON([]fiber.Map{})
		}
		videos, err := subjectService.YouTube.SearchVideos(c.Context(), query, c.Query("channel_id"))
		if err != nil {
			return c.JSON([]fiber.Map{})
		}
		return c.JSON(videos)
	})

	app.Get("/videos/:id", func(c *fiber.Ctx) error {
		if subjectService.YouTube == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "video not found"})
		}
		video, err := subjectService.YouTube.FetchVideoByID(c.Context(), c.Params("id"))
		if err != nil || video == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "video not found"})
		}
		return c.JSON(video)
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware())

	adminGroup.Post("/subjects", func(c *fiber.Ctx) error {
		type Req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
			PlaylistID  string `json:"playlist_id"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		sub, err := subjectService.CreateSubject(req.Title, req.Description, req.Icon, req.PlaylistID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to create subject",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(sub)
	})

	adminGroup.Post("/resources/upload", func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
		}
		subjectID := c.FormValue("subject_id")
		if subjectID == "" || subjectService.GetSubject(subjectID) == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "valid subject_id is required"})
		}

		filename := fmt.Sprintf("%s-%s%s", subjectID, uuid.NewString(), filepath.Ext(fileHeader.Filename))
		var url string
		if utils.R2Enabled() {
			key := fmt.Sprintf("resources/%s/%s", subjectID, filename)
			url, err = utils.UploadFileToR2(fileHeader, key)
		} else {
			err = utils.SaveFile(fileHeader, utils.GetResourcePath(filename))
			url = "/resources/" + filename
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to upload resource",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"subject_id": subjectID,
			"url":        url,
			"filename":   fileHeader.Filename,
		})
	})
}
