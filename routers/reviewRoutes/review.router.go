package reviewRoutes

import (
	reviewControllers "roomly/controllers/review"
	"roomly/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupReviewRoutes(app *fiber.App) {
	reviewGroup := app.Group("/reviews", middleware.JWTMiddleware)

	reviewGroup.Post("/", reviewControllers.Store)
	// /my and /type/:type go before the :type/:id pair
	reviewGroup.Get("/my", reviewControllers.MyReviews)
	reviewGroup.Get("/type/:type", reviewControllers.ByType)
	reviewGroup.Get("/:type/:id/statistics", reviewControllers.Statistics)
	reviewGroup.Get("/:type/:id", reviewControllers.Index)
	reviewGroup.Put("/:reviewId", reviewControllers.Update)
	reviewGroup.Delete("/:reviewId", reviewControllers.Destroy)

	serviceReviewGroup := app.Group("/service-reviews", middleware.JWTMiddleware)

	serviceReviewGroup.Post("/", reviewControllers.StoreServiceReview)
	serviceReviewGroup.Get("/my", reviewControllers.MyServiceReviews)
	serviceReviewGroup.Get("/provider/:providerId", reviewControllers.ProviderReviews)
	serviceReviewGroup.Get("/provider/:providerId/statistics", reviewControllers.ProviderReviewStatistics)
	serviceReviewGroup.Put("/:reviewId", reviewControllers.UpdateServiceReview)
	serviceReviewGroup.Delete("/:reviewId", reviewControllers.DestroyServiceReview)
}
