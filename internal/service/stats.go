package service

import (
	"context"

	"github.com/czegarraro/backend/internal/domain"
	apperrors "github.com/czegarraro/backend/pkg/util/errorutil"
)

// Statistics summarizes the problem collection for dashboard views.
type Statistics struct {
	Total          int
	Open           int
	Closed         int
	ByStatus       map[domain.ProblemStatus]int
	BySeverity     map[domain.SeverityLevel]int
	ByImpact       map[domain.ImpactLevel]int
	MeanDurationMs int64
}

// GetStatistics scans the full collection and aggregates counts. Like the
// query path it recomputes from the live snapshot on every call.
func (s *ProblemService) GetStatistics(ctx context.Context) (*Statistics, error) {
	problems, err := s.problems.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	stats := &Statistics{
		ByStatus:   make(map[domain.ProblemStatus]int),
		BySeverity: make(map[domain.SeverityLevel]int),
		ByImpact:   make(map[domain.ImpactLevel]int),
	}

	now := s.now()
	var durationSum int64
	for i := range problems {
		p := &problems[i]
		stats.Total++
		stats.ByStatus[p.Status]++
		stats.BySeverity[p.SeverityLevel]++
		stats.ByImpact[p.ImpactLevel]++
		if p.EndTime == nil {
			stats.Open++
		} else {
			stats.Closed++
		}
		durationSum += p.Duration(now)
	}
	if stats.Total > 0 {
		stats.MeanDurationMs = durationSum / int64(stats.Total)
	}
	return stats, nil
}
