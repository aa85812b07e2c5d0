package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stackdraft/canon/internal/domain/snapshot"
	"github.com/stackdraft/canon/internal/repository"
)

// SnapshotRepository implements repository.SnapshotRepository for SQLite
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create assigns the next consecutive version for the project, deactivates
// the prior active snapshot, and inserts the new one as active, all in one
// transaction. The caller's snap is returned with Version, Active, and
// CreatedAt filled in.
func (r *SnapshotRepository) Create(ctx context.Context, tenantID string, snap *snapshot.Snapshot) (*snapshot.Snapshot, error) {
	moduleIDs, err := json.Marshal(snap.ModuleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal module ids: %w", err)
	}
	nodes, err := json.Marshal(snap.Nodes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal nodes: %w", err)
	}
	edges, err := json.Marshal(snap.Edges)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal edges: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var version int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM snapshots WHERE project_id = ? AND tenant_id = ?`,
		snap.ProjectID, tenantID).Scan(&version)
	if err != nil {
		return nil, fmt.Errorf("failed to compute next version: %w", err)
	}

	// More than one active row would mean the one-active invariant is
	// already broken; refuse to extend history on top of it.
	var activeCount int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM snapshots WHERE project_id = ? AND tenant_id = ? AND active = 1`,
		snap.ProjectID, tenantID).Scan(&activeCount)
	if err != nil {
		return nil, fmt.Errorf("failed to check active snapshots: %w", err)
	}
	if activeCount > 1 {
		return nil, repository.ErrIntegrity
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE snapshots SET active = 0 WHERE project_id = ? AND tenant_id = ? AND active = 1`,
		snap.ProjectID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate prior snapshot: %w", err)
	}

	createdAt := time.Now()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (tenant_id, project_id, version, module_ids, nodes, edges, active, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		tenantID,
		snap.ProjectID,
		version,
		string(moduleIDs),
		string(nodes),
		string(edges),
		snap.CreatedBy,
		createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrIntegrity
		}
		if isForeignKeyViolation(err) {
			return nil, repository.ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	snap.TenantID = tenantID
	snap.Version = version
	snap.Active = true
	snap.CreatedAt = createdAt
	return snap, nil
}

// GetActive retrieves the project's active snapshot
func (r *SnapshotRepository) GetActive(ctx context.Context, tenantID, projectID string) (*snapshot.Snapshot, error) {
	query := `
		SELECT tenant_id, project_id, version, module_ids, nodes, edges, active, created_by, created_at
		FROM snapshots
		WHERE project_id = ? AND tenant_id = ? AND active = 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, projectID, tenantID))
}

// GetByVersion retrieves one snapshot version
func (r *SnapshotRepository) GetByVersion(ctx context.Context, tenantID, projectID string, version int) (*snapshot.Snapshot, error) {
	query := `
		SELECT tenant_id, project_id, version, module_ids, nodes, edges, active, created_by, created_at
		FROM snapshots
		WHERE project_id = ? AND tenant_id = ? AND version = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, projectID, tenantID, version))
}

// ListByProject returns snapshot summaries for a project, newest first
func (r *SnapshotRepository) ListByProject(ctx context.Context, tenantID, projectID string) ([]snapshot.Summary, error) {
	query := `
		SELECT project_id, version, module_ids, nodes, edges, active, created_by, created_at
		FROM snapshots
		WHERE project_id = ? AND tenant_id = ?
		ORDER BY version DESC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var summaries []snapshot.Summary
	for rows.Next() {
		var snap snapshot.Snapshot
		var moduleIDs, nodes, edges string
		err := rows.Scan(
			&snap.ProjectID,
			&snap.Version,
			&moduleIDs,
			&nodes,
			&edges,
			&snap.Active,
			&snap.CreatedBy,
			&snap.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if err := unmarshalGraph(&snap, moduleIDs, nodes, edges); err != nil {
			return nil, err
		}
		summaries = append(summaries, snap.Summary())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}

	return summaries, nil
}

func (r *SnapshotRepository) scanOne(row *sql.Row) (*snapshot.Snapshot, error) {
	var snap snapshot.Snapshot
	var moduleIDs, nodes, edges string
	err := row.Scan(
		&snap.TenantID,
		&snap.ProjectID,
		&snap.Version,
		&moduleIDs,
		&nodes,
		&edges,
		&snap.Active,
		&snap.CreatedBy,
		&snap.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	if err := unmarshalGraph(&snap, moduleIDs, nodes, edges); err != nil {
		return nil, err
	}
	return &snap, nil
}

func unmarshalGraph(snap *snapshot.Snapshot, moduleIDs, nodes, edges string) error {
	if err := json.Unmarshal([]byte(moduleIDs), &snap.ModuleIDs); err != nil {
		return fmt.Errorf("failed to unmarshal module ids: %w", err)
	}
	if err := json.Unmarshal([]byte(nodes), &snap.Nodes); err != nil {
		return fmt.Errorf("failed to unmarshal nodes: %w", err)
	}
	if err := json.Unmarshal([]byte(edges), &snap.Edges); err != nil {
		return fmt.Errorf("failed to unmarshal edges: %w", err)
	}
	return nil
}
