package courseRoutes

import (
	controllers "clp/controllers/course"
	validators "clp/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up admin course routes
func SetupCourseRoutes(app *fiber.App) {
	group := app.Group("/api/admin/courses")

	group.Get("/:id", validators.CourseID(), controllers.AdminGetCourse)
	group.Post("/:id/link-audit", validators.CourseID(), controllers.AdminAuditCourseLinks)
}
