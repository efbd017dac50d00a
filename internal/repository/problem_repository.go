package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/czegarraro/backend/internal/domain"
	apperrors "github.com/czegarraro/backend/pkg/util/errorutil"
)

// ProblemRepository encapsulates access to the problem collection. Ingestion
// writes through the same interface; the service layer only reads, overwrites
// status and appends comments. Save must be atomic per problem row.
type ProblemRepository interface {
	ListAll(ctx context.Context) ([]domain.Problem, error)
	GetByID(ctx context.Context, id string) (*domain.Problem, error)
	Save(ctx context.Context, problem *domain.Problem) error
}

type problemRepository struct {
	pool *pgxpool.Pool
}

// NewProblemRepository returns a Postgres-backed implementation.
func NewProblemRepository(pool *pgxpool.Pool) ProblemRepository {
	return &problemRepository{pool: pool}
}

const problemColumns = `id, title, description, impact_level, severity_level, status,
       start_time, end_time, management_zone, affected_entity_types, entity_tags,
       evidence_type, comments, github_actions, updated_at`

func (r *problemRepository) ListAll(ctx context.Context) ([]domain.Problem, error) {
	const query = `SELECT ` + problemColumns + ` FROM problems ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProblems(rows)
}

func (r *problemRepository) GetByID(ctx context.Context, id string) (*domain.Problem, error) {
	const query = `SELECT ` + problemColumns + ` FROM problems WHERE id=$1`
	problem, err := scanProblem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("problem", map[string]any{"id": id})
		}
		return nil, err
	}
	return problem, nil
}

func (r *problemRepository) Save(ctx context.Context, problem *domain.Problem) error {
	const query = `
        INSERT INTO problems (id, title, description, impact_level, severity_level, status,
            start_time, end_time, management_zone, affected_entity_types, entity_tags,
            evidence_type, comments, github_actions, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,NOW())
        ON CONFLICT (id) DO UPDATE SET
            title=EXCLUDED.title, description=EXCLUDED.description,
            impact_level=EXCLUDED.impact_level, severity_level=EXCLUDED.severity_level,
            status=EXCLUDED.status, start_time=EXCLUDED.start_time, end_time=EXCLUDED.end_time,
            management_zone=EXCLUDED.management_zone,
            affected_entity_types=EXCLUDED.affected_entity_types,
            entity_tags=EXCLUDED.entity_tags, evidence_type=EXCLUDED.evidence_type,
            comments=EXCLUDED.comments, github_actions=EXCLUDED.github_actions,
            updated_at=NOW()`
	_, err := r.pool.Exec(ctx, query,
		problem.ID,
		problem.Title,
		problem.Description,
		problem.ImpactLevel,
		problem.SeverityLevel,
		problem.Status,
		problem.StartTime,
		problem.EndTime,
		problem.ManagementZone,
		problem.AffectedEntityTypes,
		problem.EntityTags,
		problem.EvidenceType,
		problem.Comments,
		problem.GitHubActions,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProblem(row rowScanner) (*domain.Problem, error) {
	var problem domain.Problem
	if err := row.Scan(
		&problem.ID,
		&problem.Title,
		&problem.Description,
		&problem.ImpactLevel,
		&problem.SeverityLevel,
		&problem.Status,
		&problem.StartTime,
		&problem.EndTime,
		&problem.ManagementZone,
		&problem.AffectedEntityTypes,
		&problem.EntityTags,
		&problem.EvidenceType,
		&problem.Comments,
		&problem.GitHubActions,
		&problem.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &problem, nil
}

func scanProblems(rows pgx.Rows) ([]domain.Problem, error) {
	var result []domain.Problem
	for rows.Next() {
		problem, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *problem)
	}
	return result, rows.Err()
}
