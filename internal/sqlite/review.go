package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stackdraft/canon/internal/domain/conflict"
	"github.com/stackdraft/canon/internal/repository"
)

// ReviewRepository implements repository.ReviewRepository for SQLite
type ReviewRepository struct {
	db *DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create persists a review item
func (r *ReviewRepository) Create(ctx context.Context, tenantID string, item *conflict.ReviewItem) error {
	query := `
		INSERT INTO review_items (
			id, tenant_id, project_id, module_id, type, node_id,
			message, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		tenantID,
		item.ProjectID,
		item.ModuleID,
		item.Type,
		item.NodeID,
		item.Message,
		item.Status,
		item.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create review item: %w", err)
	}

	return nil
}

// Get retrieves a review item by ID
func (r *ReviewRepository) Get(ctx context.Context, tenantID, id string) (*conflict.ReviewItem, error) {
	query := `
		SELECT id, tenant_id, project_id, module_id, type, node_id,
		       message, status, created_at, resolved_at
		FROM review_items
		WHERE id = ? AND tenant_id = ?
	`

	var item conflict.ReviewItem
	var resolvedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&item.ID,
		&item.TenantID,
		&item.ProjectID,
		&item.ModuleID,
		&item.Type,
		&item.NodeID,
		&item.Message,
		&item.Status,
		&item.CreatedAt,
		&resolvedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review item: %w", err)
	}

	if resolvedAt.Valid {
		item.ResolvedAt = &resolvedAt.Time
	}

	return &item, nil
}

// ListPending returns unresolved review items for a project, optionally
// narrowed to one module, oldest first
func (r *ReviewRepository) ListPending(ctx context.Context, tenantID, projectID string, moduleID *string) ([]conflict.ReviewItem, error) {
	query := `
		SELECT id, tenant_id, project_id, module_id, type, node_id,
		       message, status, created_at, resolved_at
		FROM review_items
		WHERE tenant_id = ? AND project_id = ? AND status = 'pending'
	`
	args := []any{tenantID, projectID}

	if moduleID != nil {
		query += " AND module_id = ?"
		args = append(args, *moduleID)
	}

	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list review items: %w", err)
	}
	defer rows.Close()

	var items []conflict.ReviewItem
	for rows.Next() {
		var item conflict.ReviewItem
		var resolvedAt sql.NullTime
		err := rows.Scan(
			&item.ID,
			&item.TenantID,
			&item.ProjectID,
			&item.ModuleID,
			&item.Type,
			&item.NodeID,
			&item.Message,
			&item.Status,
			&item.CreatedAt,
			&resolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review item: %w", err)
		}
		if resolvedAt.Valid {
			item.ResolvedAt = &resolvedAt.Time
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}

	return items, nil
}

// Resolve marks a review item resolved
func (r *ReviewRepository) Resolve(ctx context.Context, tenantID, id string, resolvedAt time.Time) error {
	query := `
		UPDATE review_items
		SET status = 'resolved', resolved_at = ?
		WHERE id = ? AND tenant_id = ? AND status = 'pending'
	`

	result, err := r.db.ExecContext(ctx, query, resolvedAt, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to resolve review item: %w", err)
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
