package controllers

import (
	"clp/database"
	"clp/middleware"
	"clp/models"
	"errors"
	"log"

	allInOne "clp/controllers/allinone"

	"github.com/gofiber/fiber/v2"
)

// ListActiveSemesters lists active semesters with their courses for the student landing page
func ListActiveSemesters(c *fiber.Ctx) error {
	var semesters []models.Semester
	if err := database.Database.Db.Where("is_active = ?", true).Order("id desc").Find(&semesters).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch semesters!", nil)
	}

	type semesterRow struct {
		models.Semester
		Courses []models.Course `json:"courses"`
	}

	rows := make([]semesterRow, 0, len(semesters))
	for _, semester := range semesters {
		var courses []models.Course
		if err := database.Database.Db.Where("semester_id = ?", semester.ID).Order("id").Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch semesters!", nil)
		}
		rows = append(rows, semesterRow{Semester: semester, Courses: courses})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Semesters fetched successfully!", rows)
}

// GetHighlightedCourses lists highlighted courses across active semesters
func GetHighlightedCourses(c *fiber.Ctx) error {
	var semesterIDs []uint
	if err := database.Database.Db.Model(&models.Semester{}).
		Where("is_active = ?", true).Pluck("id", &semesterIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	courses := []models.Course{}
	if len(semesterIDs) > 0 {
		if err := database.Database.Db.
			Where("semester_id IN ? AND is_highlighted = ?", semesterIDs, true).
			Order("id").Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourseDetail returns the full course content tree for the viewer
func GetCourseDetail(c *fiber.Ctx) error {
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
