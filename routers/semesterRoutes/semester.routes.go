package semesterRoutes

import (
	controllers "clp/controllers/semester"
	validators "clp/validators/semester"

	"github.com/gofiber/fiber/v2"
)

// SetupSemesterRoutes sets up admin semester CRUD routes
func SetupSemesterRoutes(app *fiber.App) {
	group := app.Group("/api/admin/semesters")

	group.Get("/", controllers.ListSemesters)
	group.Post("/", validators.Create(), controllers.CreateSemester)
	group.Put("/:id", validators.Update(), controllers.UpdateSemester)
	group.Delete("/:id", validators.SemesterID(), controllers.DeleteSemester)
}
