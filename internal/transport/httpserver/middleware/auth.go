// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/begengineer/quickfit/internal/transport/httpserver/dto"
)

// BearerAuth returns a middleware that requires a Bearer token matching the
// given secret. An empty secret rejects every request, so a misconfigured
// deployment fails closed.
func BearerAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")

		if secret == "" || !ok ||
			subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "Invalid authorization",
			})
		}

		return c.Next()
	}
}
