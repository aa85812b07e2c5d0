package merge

import (
	"context"
	"time"

	"github.com/stackdraft/canon/internal/domain/audit"
	"github.com/stackdraft/canon/internal/domain/conflict"
	"github.com/stackdraft/canon/internal/domain/module"
	"github.com/stackdraft/canon/internal/domain/snapshot"
)

// SnapshotRepository persists versioned snapshots. Create assigns the next
// consecutive version for the project and atomically moves the active flag to
// the new snapshot.
type SnapshotRepository interface {
	Create(ctx context.Context, tenantID string, snap *snapshot.Snapshot) (*snapshot.Snapshot, error)
	GetActive(ctx context.Context, tenantID, projectID string) (*snapshot.Snapshot, error)
	GetByVersion(ctx context.Context, tenantID, projectID string, version int) (*snapshot.Snapshot, error)
	ListByProject(ctx context.Context, tenantID, projectID string) ([]snapshot.Summary, error)
}

// ModuleRepository is the subset of module persistence the merge path needs.
type ModuleRepository interface {
	Get(ctx context.Context, tenantID, id string) (*module.Module, error)
	List(ctx context.Context, tenantID string, opts module.ListModulesOptions) ([]module.ModuleRef, error)
}

// ReviewRepository persists review items raised by conflict detection.
type ReviewRepository interface {
	Create(ctx context.Context, tenantID string, item *conflict.ReviewItem) error
	ListPending(ctx context.Context, tenantID, projectID string, moduleID *string) ([]conflict.ReviewItem, error)
	Resolve(ctx context.Context, tenantID, id string, resolvedAt time.Time) error
}

// AuditRepository appends immutable audit entries.
type AuditRepository interface {
	Append(ctx context.Context, tenantID string, entry *audit.Entry) error
}
