package dto

import (
	"time"

	"github.com/czegarraro/backend/internal/domain"
)

// ProblemSummary is the list-view projection of a problem.
type ProblemSummary struct {
	ID                  string               `json:"id"`
	Title               string               `json:"title"`
	ImpactLevel         domain.ImpactLevel   `json:"impactLevel"`
	SeverityLevel       domain.SeverityLevel `json:"severityLevel"`
	Status              domain.ProblemStatus `json:"status"`
	StartTime           time.Time            `json:"startTime"`
	EndTime             *time.Time           `json:"endTime"`
	DurationMs          int64                `json:"durationMs"`
	ManagementZone      string               `json:"managementZone"`
	AffectedEntityTypes []string             `json:"affectedEntityTypes"`
	EntityTags          []string             `json:"entityTags"`
	EvidenceType        string               `json:"evidenceType"`
	CommentCount        int                  `json:"commentCount"`
	HasGitHubActions    bool                 `json:"hasGitHubActions"`
}

// ProblemDetail carries the full record including the comment log.
type ProblemDetail struct {
	ProblemSummary
	Description   string             `json:"description"`
	Comments      []CommentResponse  `json:"comments"`
	GitHubActions []domain.ActionRef `json:"githubActions"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// CommentResponse is one entry of the comment log.
type CommentResponse struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ProblemListResponse is a single result page.
type ProblemListResponse struct {
	Items    []ProblemSummary `json:"items"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.ProblemStatus `json:"status"`
}

// AddCommentRequest payload.
type AddCommentRequest struct {
	Content string `json:"content"`
}

// FilterOptionsResponse enumerates the facet sets for filter UIs.
type FilterOptionsResponse struct {
	Statuses            []string `json:"statuses"`
	ImpactLevels        []string `json:"impactLevels"`
	SeverityLevels      []string `json:"severityLevels"`
	ManagementZones     []string `json:"managementZones"`
	AffectedEntityTypes []string `json:"affectedEntityTypes"`
	EntityTags          []string `json:"entityTags"`
	EvidenceTypes       []string `json:"evidenceTypes"`
}

// StatisticsResponse summarizes the collection for dashboards.
type StatisticsResponse struct {
	Total          int            `json:"total"`
	Open           int            `json:"open"`
	Closed         int            `json:"closed"`
	ByStatus       map[string]int `json:"byStatus"`
	BySeverity     map[string]int `json:"bySeverity"`
	ByImpact       map[string]int `json:"byImpact"`
	MeanDurationMs int64          `json:"meanDurationMs"`
}
