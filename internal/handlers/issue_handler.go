package handlers

import (
	"github.com/aaditya996/City-Issue-Tracker/internal/dto"
	"github.com/aaditya996/City-Issue-Tracker/internal/identity"
	"github.com/aaditya996/City-Issue-Tracker/internal/models"
	"github.com/aaditya996/City-Issue-Tracker/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IssueHandler struct {
	issueService   *services.IssueService
	commentService *services.CommentService
}

func NewIssueHandler(issueService *services.IssueService, commentService *services.CommentService) *IssueHandler {
	return &IssueHandler{issueService: issueService, commentService: commentService}
}

type issueListResponse struct {
	Issues []dto.IssueResponse `json:"issues"`
	services.Page
	dto.ChoicesResponse
	Query            string `json:"query"`
	SelectedStatus   string `json:"selected_status"`
	SelectedCategory string `json:"selected_category"`
}

type myIssuesResponse struct {
	Issues []dto.IssueResponse `json:"issues"`
	services.Page
}

func choices() dto.ChoicesResponse {
	return dto.ChoicesResponse{
		StatusChoices:   models.StatusChoices,
		CategoryChoices: models.CategoryChoices,
	}
}

func (h *IssueHandler) List(c *fiber.Ctx) error {
	filter := services.IssueFilter{
		Query:    c.Query("q"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}

	list, err := h.issueService.List(filter, c.Query("page"))
	if err != nil {
		return respondError(c, err, "issue.list")
	}

	return c.JSON(issueListResponse{
		Issues:           dto.NewIssueResponses(list.Issues),
		Page:             list.Page,
		ChoicesResponse:  choices(),
		Query:            filter.Query,
		SelectedStatus:   filter.Status,
		SelectedCategory: filter.Category,
	})
}

func (h *IssueHandler) Choices(c *fiber.Ctx) error {
	return c.JSON(choices())
}

func (h *IssueHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	issue, err := h.issueService.Create(identity.GetActor(c), &req)
	if err != nil {
		return respondError(c, err, "issue.create")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewIssueResponse(issue))
}

func (h *IssueHandler) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, services.ErrIssueNotFound, "issue.detail")
	}

	issue, err := h.issueService.Get(id)
	if err != nil {
		return respondError(c, err, "issue.detail")
	}

	comments, err := h.commentService.ListForIssue(id)
	if err != nil {
		return respondError(c, err, "issue.detail")
	}

	return c.JSON(dto.IssueDetailResponse{
		Issue:    dto.NewIssueResponse(issue),
		Comments: comments,
	})
}

// UpdateStatus answers 200 with the current issue for every caller. Only
// staff requests change anything.
func (h *IssueHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, services.ErrIssueNotFound, "issue.status")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	issue, err := h.issueService.UpdateStatus(id, &req, identity.GetActor(c))
	if err != nil {
		return respondError(c, err, "issue.status")
	}

	return c.JSON(dto.NewIssueResponse(issue))
}

func (h *IssueHandler) AddComment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, services.ErrIssueNotFound, "comment.add")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.commentService.Add(id, identity.GetActor(c), &req)
	if err != nil {
		return respondError(c, err, "comment.add")
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *IssueHandler) MyIssues(c *fiber.Ctx) error {
	actor := identity.GetActor(c)
	if !actor.Authenticated() {
		return respondError(c, services.ErrUnauthenticated, "issue.mine")
	}

	list, err := h.issueService.ListByReporter(actor.UserID, c.Query("page"))
	if err != nil {
		return respondError(c, err, "issue.mine")
	}

	return c.JSON(myIssuesResponse{
		Issues: dto.NewIssueResponses(list.Issues),
		Page:   list.Page,
	})
}
