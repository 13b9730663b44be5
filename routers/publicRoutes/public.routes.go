package publicRoutes

import (
	controllers "clp/controllers/public"
	validators "clp/validators/public"

	"github.com/gofiber/fiber/v2"
)

// SetupPublicRoutes sets up student-facing routes
func SetupPublicRoutes(app *fiber.App) {
	app.Get("/api/semesters", controllers.ListActiveSemesters)

	// Registered before /api/courses/:id so "highlighted" is not parsed as an id
	app.Get("/api/courses/highlighted", controllers.GetHighlightedCourses)
	app.Get("/api/courses/:id", validators.CourseID(), controllers.GetCourseDetail)

	app.Post("/api/share", validators.ShareCreate(), controllers.CreateShareLink)
	app.Get("/api/share/:token", controllers.ResolveShareLink)
}
