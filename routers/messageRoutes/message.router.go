package messageRoutes

import (
	messageControllers "roomly/controllers/message"
	"roomly/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupMessageRoutes(app *fiber.App) {
	messageGroup := app.Group("/messages", middleware.JWTMiddleware)

	messageGroup.Post("/", messageControllers.Store)
	messageGroup.Get("/conversations", messageControllers.Conversations)
	messageGroup.Get("/conversation/:userId", messageControllers.Conversation)
	messageGroup.Get("/unread-count", messageControllers.UnreadCount)
	messageGroup.Put("/user/:userId/read-all", messageControllers.MarkAllAsRead)
	messageGroup.Put("/:messageId/read", messageControllers.MarkAsRead)
	messageGroup.Delete("/:messageId", messageControllers.Destroy)
	messageGroup.Get("/property/:propertyId", messageControllers.PropertyMessages)
}
