package controllers

import (
	"clp/config"
	"clp/database"
	"clp/middleware"
	"clp/models"
	"clp/utils"
	"errors"
	"log"

	allInOne "clp/controllers/allinone"

	"github.com/gofiber/fiber/v2"
)

// AdminGetCourse returns one course with its full content tree
func AdminGetCourse(c *fiber.Ctx) error {
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	course, err := allInOne.ReadCourseTree(database.Database.Db, courseID)
	if err != nil {
		if errors.Is(err, allInOne.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Failed to read course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// AdminAuditCourseLinks HEAD-checks every slide and video URL in a course
func AdminAuditCourseLinks(c *fiber.Ctx) error {
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var topicIDs []uint
	if err := database.Database.Db.Model(&models.Topic{}).
		Where("course_id = ?", courseID).Pluck("id", &topicIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to audit course links!", nil)
	}

	var targets []utils.LinkTarget

	if len(topicIDs) > 0 {
		var slides []models.Slide
		if err := database.Database.Db.Where("topic_id IN ?", topicIDs).Find(&slides).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to audit course links!", nil)
		}
		for _, slide := range slides {
			targets = append(targets, utils.LinkTarget{Kind: "slide", Title: slide.Title, URL: slide.URL})
		}

		var videos []models.Video
		if err := database.Database.Db.Where("topic_id IN ?", topicIDs).Find(&videos).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to audit course links!", nil)
		}
		for _, video := range videos {
			targets = append(targets, utils.LinkTarget{Kind: "video", Title: video.Title, URL: video.URL})
		}
	}

	timeout := 0
	if config.AppConfig != nil {
		timeout = config.AppConfig.LinkCheckTimeout
	}
	client := utils.NewLinkClient(timeout)
	results := utils.AuditLinks(client, targets)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Link audit completed!", results)
}
