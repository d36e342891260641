package identity

import (
	"errors"

	"github.com/aaditya996/City-Issue-Tracker/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const actorKey = "actor"

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

func SetActor(c *fiber.Ctx, actor *services.Actor) {
	c.Locals(actorKey, actor)
}

// GetActor returns the resolved actor, or nil for anonymous requests.
func GetActor(c *fiber.Ctx) *services.Actor {
	if actor, ok := c.Locals(actorKey).(*services.Actor); ok {
		return actor
	}
	return nil
}
