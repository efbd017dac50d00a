package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/czegarraro/backend/internal/api/dto"
	"github.com/czegarraro/backend/internal/auth"
	"github.com/czegarraro/backend/internal/domain"
	"github.com/czegarraro/backend/internal/persistence"
	"github.com/czegarraro/backend/internal/service"
	apperrors "github.com/czegarraro/backend/pkg/util/errorutil"
)

// ProblemsHandler exposes problem listing and triage endpoints.
type ProblemsHandler struct {
	problems   *service.ProblemService
	facetCache *persistence.FacetCache
}

// NewProblemsHandler constructs handler. The facet cache may be nil.
func NewProblemsHandler(problemService *service.ProblemService, facetCache *persistence.FacetCache) *ProblemsHandler {
	return &ProblemsHandler{problems: problemService, facetCache: facetCache}
}

// ListProblems GET /problems.
func (h *ProblemsHandler) ListProblems(c *fiber.Ctx) error {
	raw := rawQueryCriteria(c)
	filter, err := service.BuildProblemFilter(raw)
	if err != nil {
		return err
	}

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("limit"), service.DefaultPageSize)
	sortBy := c.Query("sortBy", "startTime")
	sortOrder := c.Query("sortOrder", service.SortOrderDesc)

	result, err := h.problems.GetProblems(c.UserContext(), filter, page, pageSize, sortBy, sortOrder)
	if err != nil {
		return err
	}

	items := make([]dto.ProblemSummary, 0, len(result.Items))
	now := time.Now()
	for i := range result.Items {
		items = append(items, problemSummary(&result.Items[i], now))
	}
	return c.JSON(fiber.Map{"data": dto.ProblemListResponse{
		Items:    items,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	}})
}

// GetProblem GET /problems/:problemId.
func (h *ProblemsHandler) GetProblem(c *fiber.Ctx) error {
	problem, err := h.problems.GetProblemByID(c.UserContext(), c.Params("problemId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"problem": problemDetail(problem, time.Now())}})
}

// UpdateStatus PATCH /problems/:problemId/status.
func (h *ProblemsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	problem, err := h.problems.UpdateStatus(c.UserContext(), c.Params("problemId"), req.Status)
	if err != nil {
		return err
	}
	// A status overwrite can change the distinct-status facet set.
	h.facetCache.Invalidate(c.UserContext())
	return c.JSON(fiber.Map{"data": fiber.Map{"problem": problemDetail(problem, time.Now())}})
}

// AddComment POST /problems/:problemId/comments.
func (h *ProblemsHandler) AddComment(c *fiber.Ctx) error {
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	authorName := ""
	if principal, ok := auth.PrincipalFromContext(c); ok {
		authorName = principal.Username
	}
	problem, err := h.problems.AddComment(c.UserContext(), c.Params("problemId"), req.Content, authorName)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"problem": problemDetail(problem, time.Now())}})
}

// rawQueryCriteria collects every query parameter, preserving repeated keys.
func rawQueryCriteria(c *fiber.Ctx) map[string][]string {
	raw := make(map[string][]string)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		raw[string(key)] = append(raw[string(key)], string(value))
	})
	return raw
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}

func problemSummary(problem *domain.Problem, now time.Time) dto.ProblemSummary {
	return dto.ProblemSummary{
		ID:                  problem.ID,
		Title:               problem.Title,
		ImpactLevel:         problem.ImpactLevel,
		SeverityLevel:       problem.SeverityLevel,
		Status:              problem.Status,
		StartTime:           problem.StartTime,
		EndTime:             problem.EndTime,
		DurationMs:          problem.Duration(now),
		ManagementZone:      problem.ManagementZone,
		AffectedEntityTypes: problem.AffectedEntityTypes,
		EntityTags:          problem.EntityTags,
		EvidenceType:        problem.EvidenceType,
		CommentCount:        len(problem.Comments),
		HasGitHubActions:    len(problem.GitHubActions) > 0,
	}
}

func problemDetail(problem *domain.Problem, now time.Time) dto.ProblemDetail {
	comments := make([]dto.CommentResponse, 0, len(problem.Comments))
	for _, comment := range problem.Comments {
		comments = append(comments, dto.CommentResponse{
			ID:         comment.ID,
			AuthorName: comment.AuthorName,
			Content:    comment.Content,
			CreatedAt:  comment.CreatedAt,
		})
	}
	return dto.ProblemDetail{
		ProblemSummary: problemSummary(problem, now),
		Description:    problem.Description,
		Comments:       comments,
		GitHubActions:  problem.GitHubActions,
		UpdatedAt:      problem.UpdatedAt,
	}
}
