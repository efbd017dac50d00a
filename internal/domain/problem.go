package domain

import "time"

// ProblemStatus enumerates lifecycle states for monitored problems. The set is
// defined by the upstream ingestion source; the engine only validates membership.
type ProblemStatus string

const (
	ProblemStatusOpen         ProblemStatus = "OPEN"
	ProblemStatusAcknowledged ProblemStatus = "ACKNOWLEDGED"
	ProblemStatusResolved     ProblemStatus = "RESOLVED"
)

// KnownStatuses lists every recognized status value.
func KnownStatuses() []ProblemStatus {
	return []ProblemStatus{ProblemStatusOpen, ProblemStatusAcknowledged, ProblemStatusResolved}
}

// IsValidStatus reports whether the value belongs to the known enumeration.
func IsValidStatus(status ProblemStatus) bool {
	switch status {
	case ProblemStatusOpen, ProblemStatusAcknowledged, ProblemStatusResolved:
		return true
	}
	return false
}

// ImpactLevel categorizes business impact of a problem.
type ImpactLevel string

const (
	ImpactInfrastructure ImpactLevel = "INFRASTRUCTURE"
	ImpactServices       ImpactLevel = "SERVICES"
	ImpactApplication    ImpactLevel = "APPLICATION"
	ImpactEnvironment    ImpactLevel = "ENVIRONMENT"
)

// SeverityLevel categorizes technical severity of a problem.
type SeverityLevel string

const (
	SeverityAvailability    SeverityLevel = "AVAILABILITY"
	SeverityError           SeverityLevel = "ERROR"
	SeverityPerformance     SeverityLevel = "PERFORMANCE"
	SeverityResource        SeverityLevel = "RESOURCE_CONTENTION"
	SeverityCustom          SeverityLevel = "CUSTOM_ALERT"
	SeverityMonitoringUnavl SeverityLevel = "MONITORING_UNAVAILABLE"
)

// Comment is a single entry in a problem's append-only comment log.
type Comment struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ActionRef links a problem to an automation action run. Only presence matters
// to the engine (hasGitHubActions filter); contents are opaque.
type ActionRef struct {
	ID          string    `json:"id"`
	WorkflowURL string    `json:"workflowUrl"`
	TriggeredAt time.Time `json:"triggeredAt"`
}

// Problem is the aggregate for a monitored incident record. Problems are
// created by ingestion, never by this service; the only mutations are status
// overwrite and comment append.
type Problem struct {
	ID                  string
	Title               string
	Description         string
	ImpactLevel         ImpactLevel
	SeverityLevel       SeverityLevel
	Status              ProblemStatus
	StartTime           time.Time
	EndTime             *time.Time
	ManagementZone      string
	AffectedEntityTypes []string
	EntityTags          []string
	EvidenceType        string
	Comments            []Comment
	GitHubActions       []ActionRef
	UpdatedAt           time.Time
}

// Duration returns the problem's duration in milliseconds: end minus start, or
// now minus start while the problem is still open.
func (p *Problem) Duration(now time.Time) int64 {
	end := now
	if p.EndTime != nil {
		end = *p.EndTime
	}
	return end.Sub(p.StartTime).Milliseconds()
}

// Clone returns a deep copy so callers can mutate without sharing slices.
func (p *Problem) Clone() *Problem {
	cp := *p
	if p.EndTime != nil {
		end := *p.EndTime
		cp.EndTime = &end
	}
	cp.AffectedEntityTypes = append([]string(nil), p.AffectedEntityTypes...)
	cp.EntityTags = append([]string(nil), p.EntityTags...)
	cp.Comments = append([]Comment(nil), p.Comments...)
	cp.GitHubActions = append([]ActionRef(nil), p.GitHubActions...)
	return &cp
}
