package dto

import (
	"time"

	"github.com/aaditya996/City-Issue-Tracker/internal/models"
	"github.com/google/uuid"
)

type CreateIssueRequest struct {
	Title       string   `json:"title" form:"title" validate:"required,max=150"`
	Description string   `json:"description" form:"description" validate:"required"`
	Category    string   `json:"category" form:"category" validate:"required,oneof=ROAD SANI WATR SAFE CIVC"`
	Photo       *string  `json:"photo" form:"photo" validate:"omitempty,max=500"`
	Latitude    *float64 `json:"latitude" form:"latitude"`
	Longitude   *float64 `json:"longitude" form:"longitude"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,oneof=REP REV IPR RES REJ"`
}

type CreateCommentRequest struct {
	Text string `json:"text" form:"text" validate:"required"`
}

type IssueResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	CategoryDisplay string    `json:"category_display"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	Photo           *string   `json:"photo"`
	Status          string    `json:"status"`
	StatusDisplay   string    `json:"status_display"`
	ReportedAt      time.Time `json:"reported_at"`
	ReportedBy      uuid.UUID `json:"reported_by"`
}

func NewIssueResponse(issue *models.Issue) IssueResponse {
	return IssueResponse{
		ID:              issue.ID,
		Title:           issue.Title,
		Description:     issue.Description,
		Category:        string(issue.Category),
		CategoryDisplay: issue.Category.Label(),
		Latitude:        issue.Latitude,
		Longitude:       issue.Longitude,
		Photo:           issue.Photo,
		Status:          string(issue.Status),
		StatusDisplay:   issue.Status.Label(),
		ReportedAt:      issue.ReportedAt,
		ReportedBy:      issue.ReporterID,
	}
}

func NewIssueResponses(issues []models.Issue) []IssueResponse {
	out := make([]IssueResponse, len(issues))
	for i := range issues {
		out[i] = NewIssueResponse(&issues[i])
	}
	return out
}

type IssueDetailResponse struct {
	Issue    IssueResponse    `json:"issue"`
	Comments []models.Comment `json:"comments"`
}

type ChoicesResponse struct {
	StatusChoices   []models.Choice `json:"status_choices"`
	CategoryChoices []models.Choice `json:"category_choices"`
}
