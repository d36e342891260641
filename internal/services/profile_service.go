package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aaditya996/City-Issue-Tracker/internal/dto"
	"github.com/aaditya996/City-Issue-Tracker/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// EnsureProfile returns the user's profile, creating a default one if it
// does not exist yet. Safe under concurrent first access.
func (s *ProfileService) EnsureProfile(userID uuid.UUID) (*models.UserProfile, error) {
	return ensureProfile(s.db, userID)
}

// ensureProfile is the lookup-then-insert used both standalone and inside
// the registration and update transactions. The unique index on user_id
// decides races; the losing insert is a no-op and the winner's row is read
// back.
func ensureProfile(tx *gorm.DB, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := tx.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	fresh := models.UserProfile{ID: uuid.New(), UserID: userID}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&fresh).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	var stored models.UserProfile
	if err := tx.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &stored, nil
}

// Get loads the user and its profile, creating the profile lazily.
func (s *ProfileService) Get(userID uuid.UUID) (*models.User, *models.UserProfile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	profile, err := s.EnsureProfile(userID)
	if err != nil {
		return nil, nil, err
	}
	return &user, profile, nil
}

// Update writes the profile fields and the mirrored user name and email in
// one transaction. Nothing is written when validation fails or any
// statement errors.
func (s *ProfileService) Update(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, *models.UserProfile, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Gender = blankToNil(req.Gender)
	req.ContactNumber = blankToNil(req.ContactNumber)
	req.Address = blankToNil(req.Address)
	if err := validateStruct(req); err != nil {
		return nil, nil, err
	}

	var user models.User
	var profile *models.UserProfile
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var err error
		profile, err = ensureProfile(tx, userID)
		if err != nil {
			return err
		}

		if req.ProfileImage != nil {
			profile.ProfileImage = blankToNil(req.ProfileImage)
		}
		profile.Gender = nil
		if req.Gender != nil {
			g := models.Gender(*req.Gender)
			profile.Gender = &g
		}
		profile.Age = req.Age
		profile.ContactNumber = req.ContactNumber
		profile.Address = req.Address

		if err := tx.Save(profile).Error; err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		if err := tx.Model(&user).Updates(map[string]interface{}{
			"first_name": req.FirstName,
			"last_name":  req.LastName,
			"email":      req.Email,
		}).Error; err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		user.FirstName = req.FirstName
		user.LastName = req.LastName
		user.Email = req.Email
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &user, profile, nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
