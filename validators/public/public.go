package publicValidator

import (
	"clp/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var shareTargetTypes = map[string]bool{
	"course": true,
	"topic":  true,
	"slide":  true,
	"video":  true,
}

// CourseID validates the :id route param
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

// ShareCreate validates the share link creation request
func ShareCreate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TargetType string `json:"target_type"`
			TargetID   uint   `json:"target_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.TargetType = strings.TrimSpace(reqData.TargetType)

		if !shareTargetTypes[reqData.TargetType] {
			errors["target_type"] = "Target type must be course, topic, slide or video!"
		}
		if reqData.TargetID == 0 {
			errors["target_id"] = "Target ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedShare", reqData)
		return c.Next()
	}
}
