package allInOneValidator

import (
	"clp/middleware"
	"strconv"
	"strings"
	"time"

	allInOneControllers "clp/controllers/allinone"

	"github.com/gofiber/fiber/v2"
)

func isValidDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// SemesterID validates the :id route param and stores it as uint
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

// SaveTree validates the full-tree PUT body. The title/section check fails the whole
// request up front, before any row is touched.
func SaveTree() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Semester ID!", nil)
		}

		tree := new(allInOneControllers.SemesterTree)
		if err := c.BodyParser(tree); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(tree.Semester.Title) == "" || strings.TrimSpace(tree.Semester.Section) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Semester title and section are required!", nil)
		}

		// Malformed dates get the same field errors as the plain semester endpoints.
		errors := make(map[string]string)
		if tree.Semester.StartDate != "" && !isValidDate(tree.Semester.StartDate) {
			errors["start_date"] = "Start date must be in YYYY-MM-DD format!"
		}
		if tree.Semester.EndDate != "" && !isValidDate(tree.Semester.EndDate) {
			errors["end_date"] = "End date must be in YYYY-MM-DD format!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("semesterID", uint(id))
		c.Locals("validatedTree", tree)
		return c.Next()
	}
}
