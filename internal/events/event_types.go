package events

import (
	"time"

	"github.com/czegarraro/backend/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProblemStatusChanged EventType = "problem_status_changed"
	EventProblemCommentAdded  EventType = "problem_comment_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ProblemID string      `json:"problem_id"`
	Actor     string      `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ProblemStatusChangedPayload payload.
type ProblemStatusChangedPayload struct {
	OldStatus domain.ProblemStatus `json:"old_status"`
	NewStatus domain.ProblemStatus `json:"new_status"`
}

// ProblemCommentAddedPayload payload.
type ProblemCommentAddedPayload struct {
	CommentID  string `json:"comment_id"`
	AuthorName string `json:"author_name"`
	Preview    string `json:"preview"`
}
