package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czegarraro/backend/internal/domain"
	"github.com/czegarraro/backend/internal/events"
	"github.com/czegarraro/backend/internal/repository"
	apperrors "github.com/czegarraro/backend/pkg/util/errorutil"
)

func newTestService(t *testing.T, problems []domain.Problem) *ProblemService {
	t.Helper()
	return NewProblemService(ProblemDependencies{
		ProblemRepo: repository.NewMemoryProblemRepository(problems),
		Dispatcher:  events.NewInMemoryDispatcher(),
	})
}

func TestUpdateStatus_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, status := range domain.KnownStatuses() {
		t.Run(string(status), func(t *testing.T) {
			svc := newTestService(t, fixtureProblems(time.Now()))

			updated, err := svc.UpdateStatus(ctx, "P-1", status)
			require.NoError(t, err)
			assert.Equal(t, status, updated.Status)

			fetched, err := svc.GetProblemByID(ctx, "P-1")
			require.NoError(t, err)
			assert.Equal(t, status, fetched.Status)
		})
	}
}

func TestUpdateStatus_PermissiveTransitions(t *testing.T) {
	// The engine enforces membership only; reopening a resolved problem is legal.
	ctx := context.Background()
	svc := newTestService(t, fixtureProblems(time.Now()))

	_, err := svc.UpdateStatus(ctx, "P-3", domain.ProblemStatusOpen)
	require.NoError(t, err)

	fetched, err := svc.GetProblemByID(ctx, "P-3")
	require.NoError(t, err)
	assert.Equal(t, domain.ProblemStatusOpen, fetched.Status)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, fixtureProblems(time.Now()))

	_, err := svc.UpdateStatus(ctx, "P-1", domain.ProblemStatus("BOGUS"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION"))

	// The stored status must be untouched.
	fetched, err := svc.GetProblemByID(ctx, "P-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ProblemStatusOpen, fetched.Status)
}

func TestUpdateStatus_MissingProblem(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, fixtureProblems(time.Now()))

	_, err := svc.UpdateStatus(ctx, "does-not-exist", domain.ProblemStatusOpen)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestAddComment_AppendOnlyInCallOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, fixtureProblems(time.Now()))

	before, err := svc.GetProblemByID(ctx, "P-2")
	require.NoError(t, err)
	initial := len(before.Comments)

	contents := []string{"first", "second", "third"}
	for _, content := range contents {
		_, err := svc.AddComment(ctx, "P-2", content, "alice")
		require.NoError(t, err)
	}

	after, err := svc.GetProblemByID(ctx, "P-2")
	require.NoError(t, err)
	require.Len(t, after.Comments, initial+len(contents))

	// Earlier comments are untouched.
	for i := 0; i < initial; i++ {
		assert.Equal(t, before.Comments[i], after.Comments[i])
	}
	for i, content := range contents {
		comment := after.Comments[initial+i]
		assert.Equal(t, content, comment.Content)
		assert.Equal(t, "alice", comment.AuthorName)
		assert.NotEmpty(t, comment.ID)
		assert.False(t, comment.CreatedAt.IsZero())
	}
}

func TestAddComment_BlankContentRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, fixtureProblems(time.Now()))

	for _, content := range []string{"", "   ", "\t\n"} {
		_, err := svc.AddComment(ctx, "P-1", content, "alice")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION"))
	}
}

func TestAddComment_DefaultsToAnonymous(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, fixtureProblems(time.Now()))

	updated, err := svc.AddComment(ctx, "P-1", "drive-by note", "")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, AnonymousAuthor, updated.Comments[0].AuthorName)
}

func TestAddComment_MissingProblem(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, fixtureProblems(time.Now()))

	_, err := svc.AddComment(ctx, "does-not-exist", "x", "a")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestGetProblems_FiltersSortsAndPaginates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, fixtureProblems(time.Now()))

	result, err := svc.GetProblems(ctx, ProblemFilter{ManagementZones: []string{"prod"}}, 1, 10, "startTime", "asc")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "P-1", result.Items[0].ID)
	assert.Equal(t, "P-2", result.Items[1].ID)
}

func TestGetFilterOptions_ReflectsCollection(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, fixtureProblems(time.Now()))

	facets, err := svc.GetFilterOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"prod", "staging"}, facets.ManagementZones)
	assert.Contains(t, facets.Statuses, "OPEN")
}

func TestGetStatistics(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, fixtureProblems(time.Now()))

	stats, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Open)
	assert.Equal(t, 2, stats.Closed)
	assert.Equal(t, 2, stats.ByStatus[domain.ProblemStatusOpen])
	assert.Equal(t, 1, stats.ByStatus[domain.ProblemStatusAcknowledged])
	assert.Equal(t, 1, stats.ByStatus[domain.ProblemStatusResolved])
	assert.Equal(t, 2, stats.BySeverity[domain.SeverityResource])
	assert.Positive(t, stats.MeanDurationMs)
}

func TestMutationEventsPublished(t *testing.T) {
	ctx := context.Background()
	dispatcher := events.NewInMemoryDispatcher()
	var seen []events.EventType
	dispatcher.Subscribe(events.EventProblemStatusChanged, func(_ context.Context, e events.Event) error {
		seen = append(seen, e.Type)
		return nil
	})
	dispatcher.Subscribe(events.EventProblemCommentAdded, func(_ context.Context, e events.Event) error {
		seen = append(seen, e.Type)
		return nil
	})

	svc := NewProblemService(ProblemDependencies{
		ProblemRepo: repository.NewMemoryProblemRepository(fixtureProblems(time.Now())),
		Dispatcher:  dispatcher,
	})

	_, err := svc.UpdateStatus(ctx, "P-1", domain.ProblemStatusAcknowledged)
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, "P-1", "ack", "ops")
	require.NoError(t, err)

	assert.Equal(t, []events.EventType{events.EventProblemStatusChanged, events.EventProblemCommentAdded}, seen)
}
