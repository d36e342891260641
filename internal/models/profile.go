package models

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// GenderChoices is ordered the way clients present it.
var GenderChoices = []Choice{
	{Code: string(GenderMale), Label: "Male"},
	{Code: string(GenderFemale), Label: "Female"},
	{Code: string(GenderOther), Label: "Other/Prefer not to say"},
}

// UserProfile extends User one-to-one. The unique index on user_id is what
// guarantees a single row per user.
type UserProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	ProfileImage  *string   `gorm:"size:500" json:"profile_image"`
	Gender        *Gender   `gorm:"size:1" json:"gender"`
	Age           *int      `json:"age"`
	ContactNumber *string   `gorm:"size:15" json:"contact_number"`
	Address       *string   `gorm:"type:text" json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	User          User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
