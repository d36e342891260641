package dto

import (
	"github.com/aaditya996/City-Issue-Tracker/internal/models"
	"github.com/google/uuid"
)

// UpdateProfileRequest replaces every profile field. ProfileImage is the
// exception: leaving it out keeps the current reference.
type UpdateProfileRequest struct {
	ProfileImage  *string `json:"profile_image" validate:"omitempty,max=500"`
	Gender        *string `json:"gender" validate:"omitempty,oneof=M F O"`
	Age           *int    `json:"age"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=15"`
	Address       *string `json:"address"`
	FirstName     string  `json:"first_name" validate:"max=150"`
	LastName      string  `json:"last_name" validate:"max=150"`
	Email         string  `json:"email" validate:"required,email,max=254"`
}

type ProfileResponse struct {
	UserID        uuid.UUID      `json:"user_id"`
	Username      string         `json:"username"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Email         string         `json:"email"`
	ProfileImage  *string        `json:"profile_image"`
	Gender        *models.Gender `json:"gender"`
	Age           *int           `json:"age"`
	ContactNumber *string        `json:"contact_number"`
	Address       *string        `json:"address"`
}

func NewProfileResponse(user *models.User, profile *models.UserProfile) ProfileResponse {
	return ProfileResponse{
		UserID:        user.ID,
		Username:      user.Username,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		ProfileImage:  profile.ProfileImage,
		Gender:        profile.Gender,
		Age:           profile.Age,
		ContactNumber: profile.ContactNumber,
		Address:       profile.Address,
	}
}
