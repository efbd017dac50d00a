package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/czegarraro/backend/internal/domain"
	apperrors "github.com/czegarraro/backend/pkg/util/errorutil"
)

// ProblemFilter is the normalized, request-scoped filter specification. A nil
// pointer or empty slice means the dimension is absent and does not constrain
// the result set.
type ProblemFilter struct {
	ImpactLevels        []domain.ImpactLevel
	SeverityLevels      []domain.SeverityLevel
	Statuses            []domain.ProblemStatus
	ManagementZones     []string
	AffectedEntityTypes []string
	EntityTags          []string
	EvidenceTypes       []string
	DateFrom            *time.Time
	DateTo              *time.Time
	DurationMin         *int64
	DurationMax         *int64
	HasComments         *bool
	HasGitHubActions    *bool
	Search              string
}

// BuildProblemFilter normalizes raw query criteria into a ProblemFilter. Each
// criterion may be absent, a scalar or a sequence; scalars are coerced to
// single-element sets and comma-separated values are split. Unrecognized or
// empty criteria are ignored. The only hard failure is an unparsable duration
// bound, which yields a VALIDATION error.
func BuildProblemFilter(raw map[string][]string) (ProblemFilter, error) {
	filter := ProblemFilter{}

	for _, val := range multiValues(raw, "impactLevel") {
		filter.ImpactLevels = append(filter.ImpactLevels, domain.ImpactLevel(val))
	}
	for _, val := range multiValues(raw, "severityLevel") {
		filter.SeverityLevels = append(filter.SeverityLevels, domain.SeverityLevel(val))
	}
	for _, val := range multiValues(raw, "status") {
		filter.Statuses = append(filter.Statuses, domain.ProblemStatus(val))
	}
	filter.ManagementZones = multiValues(raw, "managementZones")
	filter.AffectedEntityTypes = multiValues(raw, "affectedEntityTypes")
	filter.EntityTags = multiValues(raw, "entityTags")
	filter.EvidenceTypes = multiValues(raw, "evidenceType")

	filter.DateFrom = parseTimeValue(firstValue(raw, "dateFrom"))
	filter.DateTo = parseTimeValue(firstValue(raw, "dateTo"))

	var err error
	if filter.DurationMin, err = parseDurationBound("durationMin", firstValue(raw, "durationMin")); err != nil {
		return ProblemFilter{}, err
	}
	if filter.DurationMax, err = parseDurationBound("durationMax", firstValue(raw, "durationMax")); err != nil {
		return ProblemFilter{}, err
	}

	filter.HasComments = parseBoolValue(firstValue(raw, "hasComments"))
	filter.HasGitHubActions = parseBoolValue(firstValue(raw, "hasGitHubActions"))
	filter.Search = strings.TrimSpace(firstValue(raw, "search"))

	return filter, nil
}

// Matches reports whether the problem satisfies every present dimension.
// Dimensions combine with AND; values within a dimension combine with OR.
func (f ProblemFilter) Matches(p *domain.Problem, now time.Time) bool {
	if len(f.ImpactLevels) > 0 && !containsValue(f.ImpactLevels, p.ImpactLevel) {
		return false
	}
	if len(f.SeverityLevels) > 0 && !containsValue(f.SeverityLevels, p.SeverityLevel) {
		return false
	}
	if len(f.Statuses) > 0 && !containsValue(f.Statuses, p.Status) {
		return false
	}
	if len(f.ManagementZones) > 0 && !containsValue(f.ManagementZones, p.ManagementZone) {
		return false
	}
	if len(f.AffectedEntityTypes) > 0 && !intersects(f.AffectedEntityTypes, p.AffectedEntityTypes) {
		return false
	}
	if len(f.EntityTags) > 0 && !intersects(f.EntityTags, p.EntityTags) {
		return false
	}
	if len(f.EvidenceTypes) > 0 && !containsValue(f.EvidenceTypes, p.EvidenceType) {
		return false
	}
	if f.DateFrom != nil && p.StartTime.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && p.StartTime.After(*f.DateTo) {
		return false
	}
	if f.DurationMin != nil || f.DurationMax != nil {
		duration := p.Duration(now)
		if f.DurationMin != nil && duration < *f.DurationMin {
			return false
		}
		if f.DurationMax != nil && duration > *f.DurationMax {
			return false
		}
	}
	if f.HasComments != nil && *f.HasComments != (len(p.Comments) > 0) {
		return false
	}
	if f.HasGitHubActions != nil && *f.HasGitHubActions != (len(p.GitHubActions) > 0) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	return true
}

func multiValues(raw map[string][]string, key string) []string {
	var result []string
	for _, val := range raw[key] {
		for _, part := range strings.Split(val, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}

func firstValue(raw map[string][]string, key string) string {
	for _, val := range raw[key] {
		if strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

func parseDurationBound(name, val string) (*int64, error) {
	if val == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid duration bound", map[string]any{name: val})
	}
	return &parsed, nil
}

// parseTimeValue accepts RFC3339 or epoch milliseconds. Unparsable values are
// treated as absent.
func parseTimeValue(val string) *time.Time {
	if val == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return &t
	}
	if millis, err := strconv.ParseInt(val, 10, 64); err == nil {
		t := time.UnixMilli(millis).UTC()
		return &t
	}
	return nil
}

func parseBoolValue(val string) *bool {
	if val == "" {
		return nil
	}
	parsed := val == "true"
	return &parsed
}

func containsValue[T comparable](set []T, val T) bool {
	for _, candidate := range set {
		if candidate == val {
			return true
		}
	}
	return false
}

func intersects(set, values []string) bool {
	for _, val := range values {
		if containsValue(set, val) {
			return true
		}
	}
	return false
}
