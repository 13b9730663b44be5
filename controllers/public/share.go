package controllers

import (
	"clp/database"
	"clp/middleware"
	"clp/models"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// resolveCourseID finds the owning course for a deep-link target
func resolveCourseID(targetType string, targetID uint) (uint, bool) {
	db := database.Database.Db

	switch targetType {
	case "course":
		var course models.Course
		if err := db.First(&course, targetID).Error; err != nil {
			return 0, false
		}
		return course.ID, true
	case "topic":
		var topic models.Topic
		if err := db.First(&topic, targetID).Error; err != nil {
			return 0, false
		}
		return topic.CourseID, true
	case "slide":
		var slide models.Slide
		if err := db.First(&slide, targetID).Error; err != nil {
			return 0, false
		}
		var topic models.Topic
		if err := db.First(&topic, slide.TopicID).Error; err != nil {
			return 0, false
		}
		return topic.CourseID, true
	case "video":
		var video models.Video
		if err := db.First(&video, targetID).Error; err != nil {
			return 0, false
		}
		var topic models.Topic
		if err := db.First(&topic, video.TopicID).Error; err != nil {
			return 0, false
		}
		return topic.CourseID, true
	}

	return 0, false
}

// CreateShareLink mints a token pointing at a course, topic, slide or video
func CreateShareLink(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedShare").(*struct {
		TargetType string `json:"target_type"`
		TargetID   uint   `json:"target_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	courseID, found := resolveCourseID(reqData.TargetType, reqData.TargetID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Share target not found!", nil)
	}

	link := models.ShareLink{
		Token:      uuid.NewString(),
		TargetType: reqData.TargetType,
		TargetID:   reqData.TargetID,
		CourseID:   courseID,
	}

	if err := database.Database.Db.Create(&link).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create share link!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Share link created successfully!", link)
}

// ResolveShareLink turns a token back into its deep-link target
func ResolveShareLink(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Share token is required!", nil)
	}

	var link models.ShareLink
	if err := database.Database.Db.Where("token = ?", token).First(&link).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Share link not found!", nil)
	}

	// Slides and videos are re-minted on every all-in-one save, so the target row may be
	// gone even though the owning course survives. Re-resolve instead of trusting the link.
	courseID, found := resolveCourseID(link.TargetType, link.TargetID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Shared content no longer exists!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Shared content no longer exists!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Share link resolved successfully!", fiber.Map{
		"token":       link.Token,
		"target_type": link.TargetType,
		"target_id":   link.TargetID,
		"course_id":   course.ID,
		"semester_id": course.SemesterID,
	})
}
