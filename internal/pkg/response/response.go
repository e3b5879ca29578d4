package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the error JSON shape the console's transport client relies on:
// a single human-readable detail string.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// Detail sends an error response with the standard {detail} shape.
func Detail(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorBody{Detail: message})
}

// NotFound sends 404 with the standard {detail} shape.
func NotFound(c *fiber.Ctx, message string) error {
	return Detail(c, fiber.StatusNotFound, message)
}

// Unprocessable sends 422 for a request that parsed but failed validation.
func Unprocessable(c *fiber.Ctx, message string) error {
	return Detail(c, fiber.StatusUnprocessableEntity, message)
}
