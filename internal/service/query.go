package service

import (
	"sort"
	"time"

	"github.com/czegarraro/backend/internal/domain"
)

// MaxPageSize caps a single result page to bound response size. Larger
// requests are clamped silently.
const MaxPageSize = 100

// DefaultPageSize applies when the caller does not specify one.
const DefaultPageSize = 10

const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// QueryPage is one page of a filtered, sorted problem listing. Total reflects
// the filtered set before pagination.
type QueryPage struct {
	Items    []domain.Problem
	Total    int
	Page     int
	PageSize int
}

var severityRank = map[domain.SeverityLevel]int{
	domain.SeverityMonitoringUnavl: 0,
	domain.SeverityCustom:          1,
	domain.SeverityResource:        2,
	domain.SeverityPerformance:     3,
	domain.SeverityError:           4,
	domain.SeverityAvailability:    5,
}

var impactRank = map[domain.ImpactLevel]int{
	domain.ImpactEnvironment:    0,
	domain.ImpactInfrastructure: 1,
	domain.ImpactServices:       2,
	domain.ImpactApplication:    3,
}

// QueryProblems applies the filter, sorts by the named field and slices out the
// requested page. Identical inputs always produce identical output ordering:
// ties are broken by problem ID ascending.
func QueryProblems(problems []domain.Problem, filter ProblemFilter, page, pageSize int, sortBy, sortOrder string, now time.Time) QueryPage {
	matched := make([]domain.Problem, 0, len(problems))
	for i := range problems {
		if filter.Matches(&problems[i], now) {
			matched = append(matched, problems[i])
		}
	}

	sortProblems(matched, sortBy, sortOrder, now)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := len(matched)
	offset := (page - 1) * pageSize
	if offset > total {
		offset = total
	}
	end := offset + pageSize
	if end > total {
		end = total
	}

	return QueryPage{
		Items:    matched[offset:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}

// sortProblems orders by the named field; unknown fields fall back to start
// time and unknown orders fall back to descending.
func sortProblems(problems []domain.Problem, sortBy, sortOrder string, now time.Time) {
	asc := sortOrder == SortOrderAsc

	compare := compareFunc(sortBy, now)
	sort.Slice(problems, func(i, j int) bool {
		cmp := compare(&problems[i], &problems[j])
		if cmp == 0 {
			return problems[i].ID < problems[j].ID
		}
		if asc {
			return cmp < 0
		}
		return cmp > 0
	})
}

func compareFunc(sortBy string, now time.Time) func(a, b *domain.Problem) int {
	switch sortBy {
	case "severityLevel":
		return func(a, b *domain.Problem) int {
			return severityRank[a.SeverityLevel] - severityRank[b.SeverityLevel]
		}
	case "impactLevel":
		return func(a, b *domain.Problem) int {
			return impactRank[a.ImpactLevel] - impactRank[b.ImpactLevel]
		}
	case "status":
		return func(a, b *domain.Problem) int {
			return compareStrings(string(a.Status), string(b.Status))
		}
	case "duration":
		return func(a, b *domain.Problem) int {
			return compareInt64(a.Duration(now), b.Duration(now))
		}
	default: // startTime
		return func(a, b *domain.Problem) int {
			return compareInt64(a.StartTime.UnixNano(), b.StartTime.UnixNano())
		}
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
