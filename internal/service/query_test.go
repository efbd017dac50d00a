package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czegarraro/backend/internal/domain"
)

func TestQueryProblems_TotalReflectsFilteredSet(t *testing.T) {
	now := time.Now()
	problems := fixtureProblems(now)

	result := QueryProblems(problems, ProblemFilter{ManagementZones: []string{"prod"}}, 1, 1, "startTime", "desc", now)
	assert.Equal(t, 2, result.Total)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.PageSize)
}

// Concatenating all pages at a fixed page size must reproduce the filtered,
// sorted set exactly once each, in order.
func TestQueryProblems_PaginationCoverage(t *testing.T) {
	now := time.Now()
	problems := manyProblems(now, 23)
	pageSize := 5

	full := QueryProblems(problems, ProblemFilter{}, 1, MaxPageSize, "startTime", "asc", now)
	require.Equal(t, 23, full.Total)

	var concatenated []domain.Problem
	for page := 1; ; page++ {
		result := QueryProblems(problems, ProblemFilter{}, page, pageSize, "startTime", "asc", now)
		if len(result.Items) == 0 {
			break
		}
		concatenated = append(concatenated, result.Items...)
	}

	require.Len(t, concatenated, 23)
	for i := range full.Items {
		assert.Equal(t, full.Items[i].ID, concatenated[i].ID)
	}
}

func TestQueryProblems_OffsetBeyondEnd(t *testing.T) {
	now := time.Now()
	result := QueryProblems(fixtureProblems(now), ProblemFilter{}, 99, 10, "startTime", "desc", now)
	assert.Empty(t, result.Items)
	assert.Equal(t, 4, result.Total)
}

func TestQueryProblems_PageAndSizeClamping(t *testing.T) {
	now := time.Now()
	problems := fixtureProblems(now)

	result := QueryProblems(problems, ProblemFilter{}, 0, -5, "startTime", "desc", now)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.PageSize)
	assert.Len(t, result.Items, 1)

	result = QueryProblems(problems, ProblemFilter{}, 1, 100000, "startTime", "desc", now)
	assert.Equal(t, MaxPageSize, result.PageSize)
}

// Equal sort keys must order by ID ascending regardless of input order.
func TestQueryProblems_SortStability(t *testing.T) {
	now := time.Now()
	problems := fixtureProblems(now)
	// P-1 and P-4 share a start time.
	reversed := []domain.Problem{problems[3], problems[2], problems[1], problems[0]}

	for _, input := range [][]domain.Problem{problems, reversed} {
		result := QueryProblems(input, ProblemFilter{}, 1, MaxPageSize, "startTime", "asc", now)
		require.Len(t, result.Items, 4)
		assert.Equal(t, "P-1", result.Items[0].ID)
		assert.Equal(t, "P-4", result.Items[1].ID)
	}
}

func TestQueryProblems_SortFields(t *testing.T) {
	now := time.Now()
	problems := fixtureProblems(now)

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		wantFirst string
	}{
		{"start time desc", "startTime", "desc", "P-3"},
		{"start time asc", "startTime", "asc", "P-1"},
		{"severity desc puts ERROR first", "severityLevel", "desc", "P-3"},
		{"impact asc puts INFRASTRUCTURE first", "impactLevel", "asc", "P-1"},
		{"status asc", "status", "asc", "P-2"},
		{"unknown field falls back to start time", "favoriteColor", "desc", "P-3"},
		{"unknown order falls back to desc", "startTime", "sideways", "P-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := QueryProblems(problems, ProblemFilter{}, 1, MaxPageSize, tt.sortBy, tt.sortOrder, now)
			require.NotEmpty(t, result.Items)
			assert.Equal(t, tt.wantFirst, result.Items[0].ID)
		})
	}
}

func TestQueryProblems_Deterministic(t *testing.T) {
	now := time.Now()
	problems := fixtureProblems(now)
	filter := ProblemFilter{Statuses: []domain.ProblemStatus{domain.ProblemStatusOpen}}

	first := QueryProblems(problems, filter, 1, 10, "severityLevel", "desc", now)
	second := QueryProblems(problems, filter, 1, 10, "severityLevel", "desc", now)
	require.Equal(t, first.Total, second.Total)
	for i := range first.Items {
		assert.Equal(t, first.Items[i].ID, second.Items[i].ID)
	}
}

func TestCollectFacets(t *testing.T) {
	now := time.Now()
	facets := CollectFacets(fixtureProblems(now))

	assert.Equal(t, []string{"ACKNOWLEDGED", "OPEN", "RESOLVED"}, facets.Statuses)
	assert.Equal(t, []string{"prod", "staging"}, facets.ManagementZones)
	assert.Equal(t, []string{"APPLICATION", "HOST", "SERVICE"}, facets.AffectedEntityTypes)
	assert.Equal(t, []string{"EVENT", "LOG", "METRIC"}, facets.EvidenceTypes)
	assert.Contains(t, facets.EntityTags, "team:payments")
}

// Every non-empty value of each filterable field must appear in its facet set.
func TestCollectFacets_Completeness(t *testing.T) {
	now := time.Now()
	problems := fixtureProblems(now)
	facets := CollectFacets(problems)

	for i := range problems {
		p := &problems[i]
		assert.Contains(t, facets.Statuses, string(p.Status))
		assert.Contains(t, facets.ImpactLevels, string(p.ImpactLevel))
		assert.Contains(t, facets.SeverityLevels, string(p.SeverityLevel))
		if p.ManagementZone != "" {
			assert.Contains(t, facets.ManagementZones, p.ManagementZone)
		}
		if p.EvidenceType != "" {
			assert.Contains(t, facets.EvidenceTypes, p.EvidenceType)
		}
		for _, entityType := range p.AffectedEntityTypes {
			assert.Contains(t, facets.AffectedEntityTypes, entityType)
		}
		for _, tag := range p.EntityTags {
			assert.Contains(t, facets.EntityTags, tag)
		}
	}
}

func TestCollectFacets_EmptyCollection(t *testing.T) {
	facets := CollectFacets(nil)
	assert.Empty(t, facets.Statuses)
	assert.Empty(t, facets.ManagementZones)
}
