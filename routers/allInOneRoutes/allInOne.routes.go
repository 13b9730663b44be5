package allInOneRoutes

import (
	controllers "clp/controllers/allinone"
	validators "clp/validators/allinone"

	"github.com/gofiber/fiber/v2"
)

// SetupAllInOneRoutes sets up the full-tree semester editor routes
func SetupAllInOneRoutes(app *fiber.App) {
	group := app.Group("/api/admin/all-in-one")

	group.Get("/:id", validators.SemesterID(), controllers.GetAllInOne)
	group.Put("/:id", validators.SaveTree(), controllers.SaveAllInOne)
	group.Delete("/:id", validators.SemesterID(), controllers.DeleteAllInOne)
}
