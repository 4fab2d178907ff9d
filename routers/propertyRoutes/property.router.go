package propertyRoutes

import (
	propertyControllers "roomly/controllers/property"
	"roomly/middleware"
	propertyValidators "roomly/validators/property"

	"github.com/gofiber/fiber/v2"
)

func SetupPropertyRoutes(app *fiber.App) {
	propertyGroup := app.Group("/properties", middleware.JWTMiddleware)

	// Fixed paths are registered before the :slug catch-all
	propertyGroup.Get("/", propertyControllers.Index)
	propertyGroup.Get("/search", propertyControllers.Search)
	propertyGroup.Get("/my/list", propertyControllers.MyProperties)
	propertyGroup.Post("/", propertyValidators.Store(), propertyControllers.Store)
	propertyGroup.Get("/:slug", propertyControllers.Show)
	propertyGroup.Put("/:slug", propertyValidators.Update(), propertyControllers.Update)
	propertyGroup.Delete("/:slug", propertyControllers.Destroy)
}
