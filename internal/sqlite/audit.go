package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stackdraft/canon/internal/domain/audit"
)

// AuditRepository implements repository.AuditRepository for SQLite
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append inserts an audit entry. The log is append-only; there is no update
// or delete path.
func (r *AuditRepository) Append(ctx context.Context, tenantID string, entry *audit.Entry) error {
	query := `
		INSERT INTO audit_log (
			tenant_id, project_id, module_id, action, actor, reason, metadata, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		tenantID,
		entry.ProjectID,
		entry.ModuleID,
		entry.Action,
		entry.Actor,
		entry.Reason,
		entry.Metadata,
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}

	return nil
}

// List returns audit entries, newest first
func (r *AuditRepository) List(ctx context.Context, tenantID string, opts audit.ListOptions) ([]audit.Entry, error) {
	query := `
		SELECT id, tenant_id, project_id, module_id, action, actor,
		       COALESCE(reason, ''), COALESCE(metadata, ''), created_at
		FROM audit_log
		WHERE tenant_id = ?
	`
	args := []any{tenantID}

	if opts.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, opts.ProjectID)
	}
	if opts.ModuleID != nil {
		query += " AND module_id = ?"
		args = append(args, *opts.ModuleID)
	}
	if opts.Action != nil {
		query += " AND action = ?"
		args = append(args, *opts.Action)
	}

	query += " ORDER BY created_at DESC, id DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ?"
	args = append(args, limit)

	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		var moduleID sql.NullString
		err := rows.Scan(
			&entry.ID,
			&entry.TenantID,
			&entry.ProjectID,
			&moduleID,
			&entry.Action,
			&entry.Actor,
			&entry.Reason,
			&entry.Metadata,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if moduleID.Valid {
			entry.ModuleID = &moduleID.String
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", err)
	}

	return entries, nil
}
