package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/czegarraro/backend/internal/domain"
	"github.com/czegarraro/backend/internal/events"
	"github.com/czegarraro/backend/internal/repository"
	apperrors "github.com/czegarraro/backend/pkg/util/errorutil"
)

// AnonymousAuthor is recorded on comments when no authenticated identity is present.
const AnonymousAuthor = "Anonymous"

// ProblemService coordinates problem queries and the two mutation paths
// (status overwrite, comment append). It holds no state of its own beyond the
// injected store; every call recomputes from the current snapshot.
type ProblemService struct {
	problems   repository.ProblemRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// ProblemDependencies bundles collaborators for the problem service.
type ProblemDependencies struct {
	ProblemRepo repository.ProblemRepository
	Dispatcher  events.Dispatcher
	Now         func() time.Time
}

// NewProblemService constructs the service.
func NewProblemService(deps ProblemDependencies) *ProblemService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ProblemService{
		problems:   deps.ProblemRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// GetProblems returns one page of the filtered, sorted collection plus the
// total pre-pagination match count.
func (s *ProblemService) GetProblems(ctx context.Context, filter ProblemFilter, page, pageSize int, sortBy, sortOrder string) (*QueryPage, error) {
	problems, err := s.problems.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	result := QueryProblems(problems, filter, page, pageSize, sortBy, sortOrder, s.now())
	return &result, nil
}

// GetProblemByID fetches a single problem.
func (s *ProblemService) GetProblemByID(ctx context.Context, id string) (*domain.Problem, error) {
	problem, err := s.problems.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return problem, nil
}

// UpdateStatus overwrites the problem's status. Any member of the known status
// enumeration is accepted regardless of the current value; the ingestion source
// owns ordering semantics, so reopening a resolved problem is legal.
func (s *ProblemService) UpdateStatus(ctx context.Context, id string, newStatus domain.ProblemStatus) (*domain.Problem, error) {
	if !domain.IsValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(newStatus)})
	}
	problem, err := s.problems.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	oldStatus := problem.Status
	problem.Status = newStatus
	if err := s.problems.Save(ctx, problem); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventProblemStatusChanged,
		ProblemID: problem.ID,
		Payload: events.ProblemStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return problem, nil
}

// AddComment appends a comment to the problem's log. Comments are append-only:
// no edit or delete path exists.
func (s *ProblemService) AddComment(ctx context.Context, id, content, authorName string) (*domain.Problem, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("comment content required", nil)
	}
	if strings.TrimSpace(authorName) == "" {
		authorName = AnonymousAuthor
	}
	problem, err := s.problems.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	comment := domain.Comment{
		ID:         uuid.NewString(),
		AuthorName: authorName,
		Content:    content,
		CreatedAt:  s.now().UTC(),
	}
	problem.Comments = append(problem.Comments, comment)
	if err := s.problems.Save(ctx, problem); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventProblemCommentAdded,
		ProblemID: problem.ID,
		Actor:     authorName,
		Payload: events.ProblemCommentAddedPayload{
			CommentID:  comment.ID,
			AuthorName: authorName,
			Preview:    stringPreview(content, 120),
		},
	})
	return problem, nil
}

// GetFilterOptions derives the distinct filterable values in use, recomputed
// fresh from the current collection.
func (s *ProblemService) GetFilterOptions(ctx context.Context) (*FacetSet, error) {
	problems, err := s.problems.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	facets := CollectFacets(problems)
	return &facets, nil
}

func (s *ProblemService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
