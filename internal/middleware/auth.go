package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/service/auth"
)

const (
	GuestContextKey   = "guest"
	GuestIDContextKey = "guest_id"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Missing authorization header",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid authorization header format",
			})
		}

		token := parts[1]
		claims, err := authService.ValidateAccessToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			})
		}

		guest, err := authService.GetGuestByID(c.Context(), claims.GuestID)
		if err != nil || guest == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Guest not found",
			})
		}

		c.Locals(GuestContextKey, guest)
		c.Locals(GuestIDContextKey, guest.ID)

		return c.Next()
	}
}

func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guest := GetCurrentGuest(c)
		if guest == nil {
			return Unauthorized("Guest not found")
		}

		if !guest.HasRole(requiredRole) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func GetCurrentGuest(c *fiber.Ctx) *domain.Guest {
	guest, ok := c.Locals(GuestContextKey).(*domain.Guest)
	if !ok {
		return nil
	}
	return guest
}

// GetGuestID returns the authenticated caller's identity; handlers never
// re-derive it mid-pipeline.
func GetGuestID(c *fiber.Ctx) (uuid.UUID, error) {
	guestID, ok := c.Locals(GuestIDContextKey).(uuid.UUID)
	if !ok || guestID == uuid.Nil {
		return uuid.Nil, Unauthorized("Guest not authenticated")
	}
	return guestID, nil
}
