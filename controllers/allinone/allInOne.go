package controllers

import (
	"clp/database"
	"clp/middleware"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetAllInOne returns the full semester tree for the editor
func GetAllInOne(c *fiber.Ctx) error {
	semesterID, ok := c.Locals("semesterID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid semester ID!", nil)
	}

	tree, err := ReadAggregate(database.Database.Db, semesterID)
	if err != nil {
		if errors.Is(err, ErrSemesterNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Semester not found!", nil)
		}
		log.Printf("Failed to read semester %d: %v", semesterID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch semester!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Semester fetched successfully!", tree)
}

// SaveAllInOne applies the submitted tree to storage in one transaction
func SaveAllInOne(c *fiber.Ctx) error {
	semesterID, ok := c.Locals("semesterID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid semester ID!", nil)
	}

	tree, ok := c.Locals("validatedTree").(*SemesterTree)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	report, err := ReconcileSemesterTree(database.Database.Db, semesterID, tree)
	if err != nil {
		if errors.Is(err, ErrInvalidTree) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		if errors.Is(err, ErrSemesterNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Semester not found!", nil)
		}
		log.Printf("Failed to save semester %d: %v", semesterID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save semester!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Semester saved successfully!", report)
}

// DeleteAllInOne removes a semester and everything under it
func DeleteAllInOne(c *fiber.Ctx) error {
	semesterID, ok := c.Locals("semesterID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid semester ID!", nil)
	}

	if err := DeleteSemesterTree(database.Database.Db, semesterID); err != nil {
		if errors.Is(err, ErrSemesterNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Semester not found!", nil)
		}
		log.Printf("Failed to delete semester %d: %v", semesterID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete semester!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Semester deleted successfully!", nil)
}
