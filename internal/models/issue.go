package models

import (
	"time"

	"github.com/google/uuid"
)

// Choice is a stored code paired with its display label.
type Choice struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type Category string

const (
	CategoryRoads      Category = "ROAD"
	CategorySanitation Category = "SANI"
	CategoryWater      Category = "WATR"
	CategorySafety     Category = "SAFE"
	CategoryCivic      Category = "CIVC"
	DefaultCategory             = CategoryRoads
)

var CategoryChoices = []Choice{
	{Code: string(CategoryRoads), Label: "Roads & Infrastructure"},
	{Code: string(CategorySanitation), Label: "Sanitation & Waste"},
	{Code: string(CategoryWater), Label: "Water & Drainage"},
	{Code: string(CategorySafety), Label: "Public Safety"},
	{Code: string(CategoryCivic), Label: "Civic Amenities & Public Spaces"},
}

func (c Category) Valid() bool {
	return choiceLabel(CategoryChoices, string(c)) != ""
}

func (c Category) Label() string {
	return choiceLabel(CategoryChoices, string(c))
}

// Status is a flat enum: any code may follow any other.
type Status string

const (
	StatusReported    Status = "REP"
	StatusUnderReview Status = "REV"
	StatusInProgress  Status = "IPR"
	StatusResolved    Status = "RES"
	StatusRejected    Status = "REJ"
)

var StatusChoices = []Choice{
	{Code: string(StatusReported), Label: "Reported"},
	{Code: string(StatusUnderReview), Label: "Under Review"},
	{Code: string(StatusInProgress), Label: "In Progress"},
	{Code: string(StatusResolved), Label: "Resolved"},
	{Code: string(StatusRejected), Label: "Rejected"},
}

func (s Status) Valid() bool {
	return choiceLabel(StatusChoices, string(s)) != ""
}

func (s Status) Label() string {
	return choiceLabel(StatusChoices, string(s))
}

func choiceLabel(choices []Choice, code string) string {
	for _, c := range choices {
		if c.Code == code {
			return c.Label
		}
	}
	return ""
}

// Issue is a reported civic problem. ReportedAt and ReporterID are
// create-only columns.
type Issue struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:150" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    Category  `gorm:"not null;size:4;default:'ROAD';index" json:"category"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Photo       *string   `gorm:"size:500" json:"photo"`
	Status      Status    `gorm:"not null;size:3;default:'REP';index" json:"status"`
	ReportedAt  time.Time `gorm:"<-:create;not null;index" json:"reported_at"`
	ReporterID  uuid.UUID `gorm:"<-:create;type:uuid;not null;index" json:"reported_by"`
	Reporter    User      `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE" json:"-"`
}
