package middleware

import "github.com/gofiber/fiber/v2"

// Error writes the uniform error envelope used by every endpoint.
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"error": message,
	})
}

// ValidationError writes a 400 with the per-field messages.
func ValidationError(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"errors": errors,
	})
}

// JSON writes a success payload with the given status code.
func JSON(c *fiber.Ctx, statusCode int, payload fiber.Map) error {
	return c.Status(statusCode).JSON(payload)
}
