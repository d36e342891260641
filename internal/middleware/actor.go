package middleware

import (
	"errors"

	"github.com/aaditya996/City-Issue-Tracker/internal/dto"
	"github.com/aaditya996/City-Issue-Tracker/internal/identity"
	"github.com/aaditya996/City-Issue-Tracker/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ActorResolver interface {
	Actor(userID uuid.UUID) (*services.Actor, error)
}

// ResolveActor turns a verified token into a *services.Actor carrying the
// staff flag read from the database. Requests without a token stay
// anonymous.
func ResolveActor(resolver ActorResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("user").(*jwt.Token); !ok {
			return c.Next()
		}

		userID, err := identity.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid claims",
			})
		}

		actor, err := resolver.Actor(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Message: "Unauthorized",
				})
			}
			return err
		}

		identity.SetActor(c, actor)
		return c.Next()
	}
}
