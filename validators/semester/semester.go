package semesterValidator

import (
	"clp/middleware"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

func isValidDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// Create validates the semester creation request
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Section     string `json:"section"`
			Description string `json:"description"`
			HasMidterm  *bool  `json:"has_midterm"`
			HasFinal    *bool  `json:"has_final"`
			StartDate   string `json:"start_date"`
			EndDate     string `json:"end_date"`
			IsActive    *bool  `json:"is_active"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Section = strings.TrimSpace(reqData.Section)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Section == "" {
			errors["section"] = "Section is required!"
		}
		if reqData.StartDate != "" && !isValidDate(reqData.StartDate) {
			errors["start_date"] = "Start date must be in YYYY-MM-DD format!"
		}
		if reqData.EndDate != "" && !isValidDate(reqData.EndDate) {
			errors["end_date"] = "End date must be in YYYY-MM-DD format!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSemester", reqData)
		return c.Next()
	}
}

// Update validates the semester update request
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Semester ID!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Section     string `json:"section"`
			Description string `json:"description"`
			HasMidterm  *bool  `json:"has_midterm"`
			HasFinal    *bool  `json:"has_final"`
			StartDate   string `json:"start_date"`
			EndDate     string `json:"end_date"`
			IsActive    *bool  `json:"is_active"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.StartDate != "" && !isValidDate(reqData.StartDate) {
			errors["start_date"] = "Start date must be in YYYY-MM-DD format!"
		}
		if reqData.EndDate != "" && !isValidDate(reqData.EndDate) {
			errors["end_date"] = "End date must be in YYYY-MM-DD format!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("semesterID", uint(id))
		c.Locals("validatedSemesterUpdate", reqData)
		return c.Next()
	}
}

// SemesterID validates the :id route param
func SemesterID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Semester ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Semester ID!", nil)
		}

		c.Locals("semesterID", uint(id))
		return c.Next()
	}
}
