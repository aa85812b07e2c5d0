package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stackdraft/canon/internal/domain/project"
	"github.com/stackdraft/canon/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, tenantID string, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, tenant_id, name, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		tenantID,
		proj.Name,
		proj.Description,
		proj.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, tenantID, id string) (*project.Project, error) {
	query := `
		SELECT id, tenant_id, name, description, created_at
		FROM projects
		WHERE id = ? AND tenant_id = ?
	`

	var proj project.Project
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&proj.ID,
		&proj.TenantID,
		&proj.Name,
		&proj.Description,
		&proj.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &proj, nil
}

// GetDefault retrieves the default project for a tenant (the first created project)
func (r *ProjectRepository) GetDefault(ctx context.Context, tenantID string) (*project.Project, error) {
	query := `
		SELECT id, tenant_id, name, description, created_at
		FROM projects
		WHERE tenant_id = ?
		ORDER BY created_at ASC
		LIMIT 1
	`

	var proj project.Project
	err := r.db.QueryRowContext(ctx, query, tenantID).Scan(
		&proj.ID,
		&proj.TenantID,
		&proj.Name,
		&proj.Description,
		&proj.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default project: %w", err)
	}

	return &proj, nil
}

// List returns all projects for a tenant with summary information
func (r *ProjectRepository) List(ctx context.Context, tenantID string) ([]project.ProjectSummary, error) {
	query := `
		SELECT
			p.id,
			p.name,
			p.description,
			p.created_at,
			COUNT(DISTINCT m.id) as module_count,
			COUNT(DISTINCT CASE WHEN ri.status = 'pending' THEN ri.id END) as pending_reviews,
			COALESCE(MAX(CASE WHEN s.active = 1 THEN s.version END), 0) as active_version
		FROM projects p
		LEFT JOIN modules m ON m.project_id = p.id AND m.tenant_id = p.tenant_id
		LEFT JOIN review_items ri ON ri.project_id = p.id AND ri.tenant_id = p.tenant_id
		LEFT JOIN snapshots s ON s.project_id = p.id AND s.tenant_id = p.tenant_id AND s.active = 1
		WHERE p.tenant_id = ?
		GROUP BY p.id, p.name, p.description, p.created_at
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.ProjectSummary
	for rows.Next() {
		var summary project.ProjectSummary
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Description,
			&summary.CreatedAt,
			&summary.ModuleCount,
			&summary.PendingReviews,
			&summary.ActiveVersion,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return summaries, nil
}
