package main

import (
	"log"
	"time"

	"roomly/config"
	"roomly/database"
	authRoutes "roomly/routers/authRoutes"
	messageRoutes "roomly/routers/messageRoutes"
	propertyRoutes "roomly/routers/propertyRoutes"
	providerRoutes "roomly/routers/providerRoutes"
	reviewRoutes "roomly/routers/reviewRoutes"
	userProfileRoutes "roomly/routers/userRoutes"
	"roomly/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

var startTime = time.Now()

func main() {
	config.LoadConfig()
	database.ConnectDb()

	cleanup := utils.StartOtpCleanup()
	defer cleanup.Stop()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
			"uptime":    time.Since(startTime).String(),
		})
	})

	authRoutes.SetupAuthRoutes(app)
	userProfileRoutes.SetupUserRoutes(app)
	propertyRoutes.SetupPropertyRoutes(app)
	messageRoutes.SetupMessageRoutes(app)
	providerRoutes.SetupProviderRoutes(app)
	reviewRoutes.SetupReviewRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
