package service

import (
	"fmt"
	"time"

	"github.com/czegarraro/backend/internal/domain"
)

// fixtureProblems builds a small, varied collection for query tests.
func fixtureProblems(now time.Time) []domain.Problem {
	end1 := now.Add(-30 * time.Minute)
	end2 := now.Add(-10 * time.Minute)
	return []domain.Problem{
		{
			ID:                  "P-1",
			Title:               "High CPU on gateway",
			Description:         "CPU saturation on edge hosts",
			ImpactLevel:         domain.ImpactInfrastructure,
			SeverityLevel:       domain.SeverityResource,
			Status:              domain.ProblemStatusOpen,
			StartTime:           now.Add(-4 * time.Hour),
			ManagementZone:      "prod",
			AffectedEntityTypes: []string{"HOST"},
			EntityTags:          []string{"env:prod"},
			EvidenceType:        "METRIC",
		},
		{
			ID:                  "P-2",
			Title:               "Checkout latency",
			Description:         "Response time degradation on checkout service",
			ImpactLevel:         domain.ImpactServices,
			SeverityLevel:       domain.SeverityPerformance,
			Status:              domain.ProblemStatusAcknowledged,
			StartTime:           now.Add(-2 * time.Hour),
			EndTime:             &end1,
			ManagementZone:      "prod",
			AffectedEntityTypes: []string{"SERVICE"},
			EntityTags:          []string{"env:prod", "team:payments"},
			EvidenceType:        "EVENT",
			Comments:            []domain.Comment{{ID: "c1", AuthorName: "ops", Content: "mitigated"}},
		},
		{
			ID:                  "P-3",
			Title:               "Error rate spike",
			Description:         "Elevated failure rate on login application",
			ImpactLevel:         domain.ImpactApplication,
			SeverityLevel:       domain.SeverityError,
			Status:              domain.ProblemStatusResolved,
			StartTime:           now.Add(-1 * time.Hour),
			EndTime:             &end2,
			ManagementZone:      "staging",
			AffectedEntityTypes: []string{"APPLICATION"},
			EntityTags:          []string{"env:staging"},
			EvidenceType:        "LOG",
			GitHubActions:       []domain.ActionRef{{ID: "a1", WorkflowURL: "https://github.com/acme/ops/actions/runs/1"}},
		},
		{
			ID:             "P-4",
			Title:          "Disk pressure",
			Description:    "Volume almost full on database host",
			ImpactLevel:    domain.ImpactInfrastructure,
			SeverityLevel:  domain.SeverityResource,
			Status:         domain.ProblemStatusOpen,
			StartTime:      now.Add(-4 * time.Hour),
			ManagementZone: "staging",
			EntityTags:     []string{"env:staging"},
			EvidenceType:   "METRIC",
		},
	}
}

// manyProblems generates n open problems with distinct IDs and start times.
func manyProblems(now time.Time, n int) []domain.Problem {
	problems := make([]domain.Problem, 0, n)
	for i := 0; i < n; i++ {
		problems = append(problems, domain.Problem{
			ID:            fmt.Sprintf("P-%03d", i),
			Title:         fmt.Sprintf("Problem %d", i),
			ImpactLevel:   domain.ImpactServices,
			SeverityLevel: domain.SeverityError,
			Status:        domain.ProblemStatusOpen,
			StartTime:     now.Add(-time.Duration(i) * time.Minute),
		})
	}
	return problems
}
