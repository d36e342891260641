package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/aaditya996/City-Issue-Tracker/internal/dto"
	"github.com/aaditya996/City-Issue-Tracker/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct {
	db     *gorm.DB
	issues *IssueService
	now    func() time.Time
}

func NewCommentService(db *gorm.DB, issues *IssueService) *CommentService {
	return &CommentService{db: db, issues: issues, now: time.Now}
}

func (s *CommentService) Add(issueID uuid.UUID, author *Actor, req *dto.CreateCommentRequest) (*models.Comment, error) {
	if !author.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if _, err := s.issues.Get(issueID); err != nil {
		return nil, err
	}

	req.Text = strings.TrimSpace(req.Text)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        uuid.New(),
		IssueID:   issueID,
		UserID:    author.UserID,
		Text:      req.Text,
		CreatedAt: s.now().UTC(),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}

// ListForIssue returns the thread newest first.
func (s *CommentService) ListForIssue(issueID uuid.UUID) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	if err := s.db.Where("issue_id = ?", issueID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
