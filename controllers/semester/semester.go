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

// ListSemesters lists all semesters with their course counts
func ListSemesters(c *fiber.Ctx) error {
	var semesters []models.Semester
	if err := database.Database.Db.Order("id desc").Find(&semesters).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch semesters!", nil)
	}

	type semesterRow struct {
		models.Semester
		CourseCount int64 `json:"course_count"`
	}

	rows := make([]semesterRow, 0, len(semesters))
	for _, semester := range semesters {
		var count int64
		if err := database.Database.Db.Model(&models.Course{}).
			Where("semester_id = ?", semester.ID).Count(&count).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch semesters!", nil)
		}
		rows = append(rows, semesterRow{Semester: semester, CourseCount: count})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Semesters fetched successfully!", rows)
}

// CreateSemester creates an empty semester
func CreateSemester(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSemester").(*struct {
		Title       string `json:"title"`
		Section     string `json:"section"`
		Description string `json:"description"`
		HasMidterm  *bool  `json:"has_midterm"`
		HasFinal    *bool  `json:"has_final"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
		IsActive    *bool  `json:"is_active"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Omitted booleans default to true; an explicit false is stored as sent.
	hasMidterm, hasFinal, isActive := true, true, true
	if reqData.HasMidterm != nil {
		hasMidterm = *reqData.HasMidterm
	}
	if reqData.HasFinal != nil {
		hasFinal = *reqData.HasFinal
	}
	if reqData.IsActive != nil {
		isActive = *reqData.IsActive
	}

	semester := models.Semester{
		Title:       reqData.Title,
		Section:     reqData.Section,
		Description: reqData.Description,
		HasMidterm:  hasMidterm,
		HasFinal:    hasFinal,
		StartDate:   allInOne.ParseDate(reqData.StartDate),
		EndDate:     allInOne.ParseDate(reqData.EndDate),
		IsActive:    isActive,
	}

	if err := database.Database.Db.Create(&semester).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create semester!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Semester created successfully!", semester)
}

// UpdateSemester updates scalar semester fields; courses are managed by the all-in-one editor
func UpdateSemester(c *fiber.Ctx) error {
	semesterID, ok := c.Locals("semesterID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid semester ID!", nil)
	}

	var semester models.Semester
	if err := database.Database.Db.First(&semester, semesterID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Semester not found!", nil)
	}

	reqData, ok := c.Locals("validatedSemesterUpdate").(*struct {
		Title       string `json:"title"`
		Section     string `json:"section"`
		Description string `json:"description"`
		HasMidterm  *bool  `json:"has_midterm"`
		HasFinal    *bool  `json:"has_final"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
		IsActive    *bool  `json:"is_active"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" {
		semester.Title = reqData.Title
	}
	if reqData.Section != "" {
		semester.Section = reqData.Section
	}
	if reqData.Description != "" {
		semester.Description = reqData.Description
	}
	if reqData.HasMidterm != nil {
		semester.HasMidterm = *reqData.HasMidterm
	}
	if reqData.HasFinal != nil {
		semester.HasFinal = *reqData.HasFinal
	}
	if reqData.StartDate != "" {
		semester.StartDate = allInOne.ParseDate(reqData.StartDate)
	}
	if reqData.EndDate != "" {
		semester.EndDate = allInOne.ParseDate(reqData.EndDate)
	}
	if reqData.IsActive != nil {
		semester.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(&semester).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update semester!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Semester updated successfully!", semester)
}

// DeleteSemester removes a semester and all of its content
func DeleteSemester(c *fiber.Ctx) error {
	semesterID, ok := c.Locals("semesterID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid semester ID!", nil)
	}

	if err := allInOne.DeleteSemesterTree(database.Database.Db, semesterID); err != nil {
		if errors.Is(err, allInOne.ErrSemesterNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Semester not found!", nil)
		}
		log.Printf("Failed to delete semester %d: %v", semesterID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete semester!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Semester deleted successfully!", nil)
}
