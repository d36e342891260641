package handlers

import (
	"github.com/aaditya996/City-Issue-Tracker/internal/dto"
	"github.com/aaditya996/City-Issue-Tracker/internal/identity"
	"github.com/aaditya996/City-Issue-Tracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	actor := identity.GetActor(c)
	if !actor.Authenticated() {
		return respondError(c, services.ErrUnauthenticated, "profile.get")
	}

	user, profile, err := h.profileService.Get(actor.UserID)
	if err != nil {
		return respondError(c, err, "profile.get")
	}

	return c.JSON(dto.NewProfileResponse(user, profile))
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	actor := identity.GetActor(c)
	if !actor.Authenticated() {
		return respondError(c, services.ErrUnauthenticated, "profile.update")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, profile, err := h.profileService.Update(actor.UserID, &req)
	if err != nil {
		return respondError(c, err, "profile.update")
	}

	return c.JSON(dto.NewProfileResponse(user, profile))
}
