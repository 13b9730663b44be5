package main

import (
	"clp/config"
	"clp/database"
	"clp/utils"
	"log"

	allInOneRoutes "clp/routers/allInOneRoutes"
	courseRoutes "clp/routers/courseRoutes"
	publicRoutes "clp/routers/publicRoutes"
	semesterRoutes "clp/routers/semesterRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	allInOneRoutes.SetupAllInOneRoutes(app)
	semesterRoutes.SetupSemesterRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	publicRoutes.SetupPublicRoutes(app)

	// Keep is_active in step with semester date windows
	utils.StartSemesterScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
