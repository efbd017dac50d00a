package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/czegarraro/backend/internal/domain"
	apperrors "github.com/czegarraro/backend/pkg/util/errorutil"
)

// memoryProblemRepository keeps the collection in process memory. It backs demo
// mode when no POSTGRES_DSN is configured, and the test suites. Mutations are
// serialized by a single lock, so readers never observe a torn record.
type memoryProblemRepository struct {
	mu       sync.RWMutex
	problems map[string]*domain.Problem
}

// NewMemoryProblemRepository builds an in-memory store seeded with the given problems.
func NewMemoryProblemRepository(seed []domain.Problem) ProblemRepository {
	repo := &memoryProblemRepository{problems: make(map[string]*domain.Problem, len(seed))}
	for i := range seed {
		repo.problems[seed[i].ID] = seed[i].Clone()
	}
	return repo
}

func (r *memoryProblemRepository) ListAll(_ context.Context) ([]domain.Problem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Problem, 0, len(r.problems))
	for _, problem := range r.problems {
		result = append(result, *problem.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memoryProblemRepository) GetByID(_ context.Context, id string) (*domain.Problem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	problem, ok := r.problems[id]
	if !ok {
		return nil, apperrors.NewNotFound("problem", map[string]any{"id": id})
	}
	return problem.Clone(), nil
}

func (r *memoryProblemRepository) Save(_ context.Context, problem *domain.Problem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := problem.Clone()
	stored.UpdatedAt = time.Now().UTC()
	r.problems[stored.ID] = stored
	return nil
}

// seedFile mirrors the JSON layout produced by the ingestion exporter.
type seedFile struct {
	Problems []domain.Problem `json:"problems"`
}

// LoadSeedProblems reads demo problems from a JSON file.
func LoadSeedProblems(path string) ([]domain.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return seed.Problems, nil
}
