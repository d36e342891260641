package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaditya996/City-Issue-Tracker/internal/dto"
	"github.com/aaditya996/City-Issue-Tracker/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrIssueNotFound   = errors.New("issue not found")
	ErrUnauthenticated = errors.New("authentication required")
)

type IssueService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewIssueService(db *gorm.DB) *IssueService {
	return &IssueService{db: db, now: time.Now}
}

// IssueFilter narrows a listing. Empty fields do not filter.
type IssueFilter struct {
	Query    string
	Status   string
	Category string
}

type IssueList struct {
	Issues []models.Issue
	Page   Page
}

func (s *IssueService) Create(reporter *Actor, req *dto.CreateIssueRequest) (*models.Issue, error) {
	if !reporter.Authenticated() {
		return nil, ErrUnauthenticated
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		req.Category = string(models.DefaultCategory)
	}
	if req.Photo != nil && strings.TrimSpace(*req.Photo) == "" {
		req.Photo = nil
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	issue := models.Issue{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Category:    models.Category(req.Category),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Photo:       req.Photo,
		Status:      models.StatusReported,
		ReportedAt:  s.now().UTC(),
		ReporterID:  reporter.UserID,
	}

	if err := s.db.Create(&issue).Error; err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	return &issue, nil
}

func (s *IssueService) Get(id uuid.UUID) (*models.Issue, error) {
	var issue models.Issue
	if err := s.db.First(&issue, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return &issue, nil
}

// UpdateStatus sets the status when actor is staff. For anyone else the
// request is dropped: the issue comes back unchanged and no error is
// returned. Any of the five codes may follow any other.
func (s *IssueService) UpdateStatus(id uuid.UUID, req *dto.UpdateStatusRequest, actor *Actor) (*models.Issue, error) {
	issue, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !actor.Staff() {
		attrs := []any{"issue_id", id.String(), "action", "issue.status"}
		if actor.Authenticated() {
			attrs = append(attrs, "user_id", actor.UserID.String())
		}
		slog.Info("status update ignored for non-staff actor", attrs...)
		return issue, nil
	}

	req.Status = strings.TrimSpace(req.Status)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	result := s.db.Model(issue).Update("status", req.Status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrIssueNotFound
	}

	issue.Status = models.Status(req.Status)
	slog.Info("issue status updated", "issue_id", id.String(), "user_id", actor.UserID.String(), "status", req.Status)
	return issue, nil
}

// List returns issues matching every non-empty filter, newest first.
func (s *IssueService) List(filter IssueFilter, page string) (*IssueList, error) {
	return s.paginate(s.filtered(filter), page)
}

func (s *IssueService) ListByReporter(reporterID uuid.UUID, page string) (*IssueList, error) {
	return s.paginate(s.db.Model(&models.Issue{}).Where("reporter_id = ?", reporterID), page)
}

func (s *IssueService) filtered(filter IssueFilter) *gorm.DB {
	query := s.db.Model(&models.Issue{})

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		query = query.Where(
			`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`,
			pattern, pattern,
		)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	return query
}

func (s *IssueService) paginate(query *gorm.DB, raw string) (*IssueList, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count issues: %w", err)
	}

	page := Paginate(total, DefaultPageSize, raw)
	issues := make([]models.Issue, 0, page.PageSize)
	if err := query.Session(&gorm.Session{}).
		Order("reported_at DESC").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&issues).Error; err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	return &IssueList{Issues: issues, Page: page}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
