package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/czegarraro/backend/internal/api/dto"
	"github.com/czegarraro/backend/internal/service"
)

// AnalyticsHandler serves aggregate views over the problem collection.
type AnalyticsHandler struct {
	problems *service.ProblemService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(problemService *service.ProblemService) *AnalyticsHandler {
	return &AnalyticsHandler{problems: problemService}
}

// Summary GET /analytics/summary.
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	stats, err := h.problems.GetStatistics(c.UserContext())
	if err != nil {
		return err
	}

	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, count := range stats.ByStatus {
		byStatus[string(status)] = count
	}
	bySeverity := make(map[string]int, len(stats.BySeverity))
	for severity, count := range stats.BySeverity {
		bySeverity[string(severity)] = count
	}
	byImpact := make(map[string]int, len(stats.ByImpact))
	for impact, count := range stats.ByImpact {
		byImpact[string(impact)] = count
	}

	return c.JSON(fiber.Map{"data": dto.StatisticsResponse{
		Total:          stats.Total,
		Open:           stats.Open,
		Closed:         stats.Closed,
		ByStatus:       byStatus,
		BySeverity:     bySeverity,
		ByImpact:       byImpact,
		MeanDurationMs: stats.MeanDurationMs,
	}})
}
