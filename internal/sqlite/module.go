package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stackdraft/canon/internal/domain/graph"
	"github.com/stackdraft/canon/internal/domain/module"
	"github.com/stackdraft/canon/internal/repository"
)

// ModuleRepository implements repository.ModuleRepository for SQLite
type ModuleRepository struct {
	db *DB
}

// NewModuleRepository creates a new ModuleRepository
func NewModuleRepository(db *DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// Create creates a new module
func (r *ModuleRepository) Create(ctx context.Context, tenantID string, mod *module.Module) error {
	nodes, err := json.Marshal(mod.Nodes)
	if err != nil {
		return fmt.Errorf("failed to marshal nodes: %w", err)
	}
	edges, err := json.Marshal(mod.Edges)
	if err != nil {
		return fmt.Errorf("failed to marshal edges: %w", err)
	}

	query := `
		INSERT INTO modules (
			id, tenant_id, project_id, ord, status, confidence,
			nodes, edges, created_at, modified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		mod.ID,
		tenantID,
		mod.ProjectID,
		mod.Order,
		mod.Status,
		mod.Confidence,
		string(nodes),
		string(edges),
		mod.CreatedAt,
		mod.ModifiedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create module: %w", err)
	}

	return nil
}

// Get retrieves a module by ID
func (r *ModuleRepository) Get(ctx context.Context, tenantID, id string) (*module.Module, error) {
	query := `
		SELECT id, tenant_id, project_id, ord, status, confidence,
		       nodes, edges, created_at, modified_at
		FROM modules
		WHERE id = ? AND tenant_id = ?
	`

	var mod module.Module
	var nodes, edges string
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&mod.ID,
		&mod.TenantID,
		&mod.ProjectID,
		&mod.Order,
		&mod.Status,
		&mod.Confidence,
		&nodes,
		&edges,
		&mod.CreatedAt,
		&mod.ModifiedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	if err := json.Unmarshal([]byte(nodes), &mod.Nodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nodes: %w", err)
	}
	if err := json.Unmarshal([]byte(edges), &mod.Edges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal edges: %w", err)
	}

	return &mod, nil
}

// UpdateStatus updates a module's workflow status
func (r *ModuleRepository) UpdateStatus(ctx context.Context, tenantID, id string, status module.Status) error {
	query := `
		UPDATE modules
		SET status = ?, modified_at = CURRENT_TIMESTAMP
		WHERE id = ? AND tenant_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to update module status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List returns module references ordered by submission order
func (r *ModuleRepository) List(ctx context.Context, tenantID string, opts module.ListModulesOptions) ([]module.ModuleRef, error) {
	query := `
		SELECT id, project_id, ord, status, confidence, nodes, edges
		FROM modules
		WHERE tenant_id = ?
	`
	args := []any{tenantID}

	if opts.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, opts.ProjectID)
	}

	if len(opts.Statuses) > 0 {
		placeholders := make([]string, len(opts.Statuses))
		for i, status := range opts.Statuses {
			placeholders[i] = "?"
			args = append(args, status)
		}
		query += fmt.Sprintf(" AND status IN (%s)", strings.Join(placeholders, ", "))
	}

	query += " ORDER BY ord ASC, created_at ASC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	defer rows.Close()

	var refs []module.ModuleRef
	for rows.Next() {
		var ref module.ModuleRef
		var nodes, edges string
		err := rows.Scan(
			&ref.ID,
			&ref.ProjectID,
			&ref.Order,
			&ref.Status,
			&ref.Confidence,
			&nodes,
			&edges,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan module ref: %w", err)
		}

		var nodeSet []graph.Node
		if err := json.Unmarshal([]byte(nodes), &nodeSet); err != nil {
			return nil, fmt.Errorf("failed to unmarshal nodes: %w", err)
		}
		var edgeSet []graph.Edge
		if err := json.Unmarshal([]byte(edges), &edgeSet); err != nil {
			return nil, fmt.Errorf("failed to unmarshal edges: %w", err)
		}
		ref.NodeCount = len(nodeSet)
		ref.EdgeCount = len(edgeSet)

		refs = append(refs, ref)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating module rows: %w", err)
	}

	return refs, nil
}
