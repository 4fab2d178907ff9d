package providerRoutes

import (
	providerControllers "roomly/controllers/provider"
	"roomly/middleware"
	providerValidators "roomly/validators/provider"

	"github.com/gofiber/fiber/v2"
)

func SetupProviderRoutes(app *fiber.App) {
	providerGroup := app.Group("/service-providers", middleware.JWTMiddleware)

	// Fixed paths are registered before the :id catch-all
	providerGroup.Get("/", providerControllers.Index)
	providerGroup.Get("/search", providerControllers.Search)
	providerGroup.Get("/types", providerControllers.ServiceTypes)
	providerGroup.Get("/type/:serviceType", providerControllers.ByType)
	providerGroup.Post("/", providerValidators.Store(), providerControllers.Store)
	providerGroup.Get("/:id", providerControllers.Show)
	providerGroup.Put("/:id", providerValidators.Update(), providerControllers.Update)
	providerGroup.Delete("/:id", providerControllers.Destroy)
}
