package userRoutes

import (
	userControllers "roomly/controllers/userControllers"
	"roomly/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user", middleware.JWTMiddleware)

	userGroup.Get("/profile", userControllers.Profile)
	userGroup.Put("/profile", userControllers.UpdateProfile)
}
