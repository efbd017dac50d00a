package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/czegarraro/backend/internal/api/dto"
	"github.com/czegarraro/backend/internal/persistence"
	"github.com/czegarraro/backend/internal/service"
)

// FiltersHandler serves the facet sets used to populate filter UIs.
type FiltersHandler struct {
	problems *service.ProblemService
	cache    *persistence.FacetCache
}

// NewFiltersHandler constructs handler. The cache may be nil.
func NewFiltersHandler(problemService *service.ProblemService, cache *persistence.FacetCache) *FiltersHandler {
	return &FiltersHandler{problems: problemService, cache: cache}
}

// GetFilterOptions GET /filters/options.
func (h *FiltersHandler) GetFilterOptions(c *fiber.Ctx) error {
	var cached dto.FilterOptionsResponse
	if h.cache.Get(c.UserContext(), &cached) {
		return c.JSON(fiber.Map{"data": cached})
	}

	facets, err := h.problems.GetFilterOptions(c.UserContext())
	if err != nil {
		return err
	}
	response := dto.FilterOptionsResponse{
		Statuses:            facets.Statuses,
		ImpactLevels:        facets.ImpactLevels,
		SeverityLevels:      facets.SeverityLevels,
		ManagementZones:     facets.ManagementZones,
		AffectedEntityTypes: facets.AffectedEntityTypes,
		EntityTags:          facets.EntityTags,
		EvidenceTypes:       facets.EvidenceTypes,
	}
	h.cache.Set(c.UserContext(), response)
	return c.JSON(fiber.Map{"data": response})
}
