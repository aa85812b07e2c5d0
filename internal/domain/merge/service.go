package merge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stackdraft/canon/internal/domain/audit"
	"github.com/stackdraft/canon/internal/domain/conflict"
	"github.com/stackdraft/canon/internal/domain/graph"
	"github.com/stackdraft/canon/internal/domain/module"
	"github.com/stackdraft/canon/internal/domain/snapshot"
	"github.com/stackdraft/canon/internal/repository"
)

// Service orchestrates the merge path: conflict detection, folding approved
// modules into versioned snapshots, resubmission with explicit resolutions,
// rollback, and version diffing. All writes for a project are serialized
// through a per-project lock.
type Service struct {
	snapshots SnapshotRepository
	modules   ModuleRepository
	reviews   ReviewRepository
	audits    AuditRepository
	detector  *conflict.Detector
	logger    *slog.Logger
	locks     *projectLocks
}

// NewService creates a merge service.
func NewService(
	snapshots SnapshotRepository,
	modules ModuleRepository,
	reviews ReviewRepository,
	audits AuditRepository,
	detector *conflict.Detector,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		snapshots: snapshots,
		modules:   modules,
		reviews:   reviews,
		audits:    audits,
		detector:  detector,
		logger:    logger,
		locks:     newProjectLocks(),
	}
}

// MergeResult reports the outcome of submitting one module. When conflicts
// block the merge, Snapshot is nil and the canonical graph is unchanged.
type MergeResult struct {
	Merged    bool                  `json:"merged"`
	Snapshot  *snapshot.Snapshot    `json:"snapshot,omitempty"`
	Conflicts []conflict.Conflict   `json:"conflicts,omitempty"`
	Reviews   []conflict.ReviewItem `json:"reviews,omitempty"`
}

// MergedModule names one module folded during a batch merge and the snapshot
// version it produced.
type MergedModule struct {
	ModuleID string `json:"module_id"`
	Version  int    `json:"version"`
}

// BlockedModule names one module a batch merge skipped because of conflicts.
type BlockedModule struct {
	ModuleID  string              `json:"module_id"`
	Conflicts []conflict.Conflict `json:"conflicts"`
}

// BatchResult reports the outcome of a batch merge over a project's approved
// modules.
type BatchResult struct {
	Merged  []MergedModule  `json:"merged"`
	Blocked []BlockedModule `json:"blocked"`
}

// SubmitModule attempts to fold one approved module into the project's
// canonical graph. Conflicts block the merge, raise review items, and leave
// the active snapshot untouched; a clean fold produces the next snapshot
// version.
func (s *Service) SubmitModule(ctx context.Context, tenantID, moduleID, actor string) (*MergeResult, error) {
	if moduleID == "" {
		return nil, ErrInvalidInput
	}

	mod, err := s.loadModule(ctx, tenantID, moduleID)
	if err != nil {
		return nil, err
	}
	if mod.Status != module.StatusApproved {
		return nil, ErrModuleNotApproved
	}

	unlock := s.locks.lock(mod.ProjectID)
	defer unlock()

	active, err := s.loadActive(ctx, tenantID, mod.ProjectID)
	if err != nil {
		return nil, err
	}
	if active != nil && active.HasModule(moduleID) {
		return nil, ErrModuleAlreadyMerged
	}

	acc := NewAccumulator(active)
	conflicts := s.detector.Detect(*mod, acc.Nodes())
	if len(conflicts) > 0 {
		reviews, err := s.raiseReviews(ctx, tenantID, mod, conflicts, actor)
		if err != nil {
			return nil, err
		}
		return &MergeResult{Merged: false, Conflicts: conflicts, Reviews: reviews}, nil
	}

	acc.Apply(*mod)
	snap, err := s.persist(ctx, tenantID, mod.ProjectID, acc, actor)
	if err != nil {
		return nil, err
	}
	s.auditMerge(ctx, tenantID, mod, snap, actor)

	return &MergeResult{Merged: true, Snapshot: snap}, nil
}

// MergeApproved folds every approved module of a project in submission order.
// Each clean module produces its own snapshot version; conflicted modules are
// recorded for review and skipped, and later modules still merge against the
// updated canonical graph.
func (s *Service) MergeApproved(ctx context.Context, tenantID, projectID, actor string) (*BatchResult, error) {
	if projectID == "" {
		return nil, ErrInvalidInput
	}

	unlock := s.locks.lock(projectID)
	defer unlock()

	refs, err := s.modules.List(ctx, tenantID, module.ListModulesOptions{
		ProjectID: projectID,
		Statuses:  []module.Status{module.StatusApproved},
	})
	if err != nil {
		return nil, fmt.Errorf("listing approved modules: %w", err)
	}

	active, err := s.loadActive(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	acc := NewAccumulator(active)
	result := &BatchResult{Merged: []MergedModule{}, Blocked: []BlockedModule{}}

	for _, ref := range refs {
		if acc.HasModule(ref.ID) {
			continue
		}
		mod, err := s.loadModule(ctx, tenantID, ref.ID)
		if err != nil {
			return nil, err
		}

		conflicts := s.detector.Detect(*mod, acc.Nodes())
		if len(conflicts) > 0 {
			if _, err := s.raiseReviews(ctx, tenantID, mod, conflicts, actor); err != nil {
				return nil, err
			}
			result.Blocked = append(result.Blocked, BlockedModule{ModuleID: mod.ID, Conflicts: conflicts})
			continue
		}

		acc.Apply(*mod)
		snap, err := s.persist(ctx, tenantID, projectID, acc, actor)
		if err != nil {
			return nil, err
		}
		s.auditMerge(ctx, tenantID, mod, snap, actor)
		result.Merged = append(result.Merged, MergedModule{ModuleID: mod.ID, Version: snap.Version})
	}

	return result, nil
}

// Resubmit folds a previously conflicted module using an explicit resolution
// action. It requires pending review items for the module, marks them
// resolved, and produces the next snapshot version.
func (s *Service) Resubmit(ctx context.Context, tenantID, moduleID string, res conflict.Resolution, actor, reason string) (*MergeResult, error) {
	if moduleID == "" {
		return nil, ErrInvalidInput
	}
	if !conflict.ValidResolution(res) {
		return nil, ErrInvalidResolution
	}

	mod, err := s.loadModule(ctx, tenantID, moduleID)
	if err != nil {
		return nil, err
	}
	if mod.Status != module.StatusApproved {
		return nil, ErrModuleNotApproved
	}

	unlock := s.locks.lock(mod.ProjectID)
	defer unlock()

	pending, err := s.reviews.ListPending(ctx, tenantID, mod.ProjectID, &moduleID)
	if err != nil {
		return nil, fmt.Errorf("listing pending reviews: %w", err)
	}
	if len(pending) == 0 {
		return nil, ErrNoPendingReviews
	}

	active, err := s.loadActive(ctx, tenantID, mod.ProjectID)
	if err != nil {
		return nil, err
	}
	if active != nil && active.HasModule(moduleID) {
		return nil, ErrModuleAlreadyMerged
	}

	acc := NewAccumulator(active)
	acc.ApplyResolved(*mod, res)
	snap, err := s.persist(ctx, tenantID, mod.ProjectID, acc, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, item := range pending {
		if err := s.reviews.Resolve(ctx, tenantID, item.ID, now); err != nil {
			return nil, fmt.Errorf("resolving review %s: %w", item.ID, err)
		}
	}

	if s.audits != nil {
		meta, _ := json.Marshal(map[string]any{"resolution": res, "reviews_resolved": len(pending)})
		_ = s.audits.Append(ctx, tenantID, &audit.Entry{
			ProjectID: mod.ProjectID,
			ModuleID:  &mod.ID,
			Action:    audit.ActionConflictResolved,
			Actor:     actor,
			Reason:    reason,
			Metadata:  string(meta),
		})
	}
	s.auditMerge(ctx, tenantID, mod, snap, actor)

	return &MergeResult{Merged: true, Snapshot: snap}, nil
}

// Rollback restores the content of an earlier snapshot by creating a new,
// later version with identical nodes, edges, and module set. History is never
// rewritten; the restored version remains in place.
func (s *Service) Rollback(ctx context.Context, tenantID, projectID string, version int, actor, reason string) (*snapshot.Snapshot, error) {
	if projectID == "" || version < 1 {
		return nil, ErrInvalidInput
	}

	unlock := s.locks.lock(projectID)
	defer unlock()

	target, err := s.snapshots.GetByVersion(ctx, tenantID, projectID, version)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("loading snapshot v%d: %w", version, err)
	}

	// Capture the version being abandoned before Create deactivates it.
	active, err := s.loadActive(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	fromVersion := 0
	if active != nil {
		fromVersion = active.Version
	}

	snap, err := s.snapshots.Create(ctx, tenantID, &snapshot.Snapshot{
		TenantID:  tenantID,
		ProjectID: projectID,
		ModuleIDs: append([]string{}, target.ModuleIDs...),
		Nodes:     graph.CloneNodes(target.Nodes),
		Edges:     graph.CloneEdges(target.Edges),
		CreatedBy: actor,
	})
	if err != nil {
		return nil, fmt.Errorf("creating rollback snapshot: %w", err)
	}

	if s.audits != nil {
		meta, _ := json.Marshal(map[string]any{
			"from_version":     fromVersion,
			"restored_version": version,
			"new_version":      snap.Version,
		})
		_ = s.audits.Append(ctx, tenantID, &audit.Entry{
			ProjectID: projectID,
			Action:    audit.ActionRollback,
			Actor:     actor,
			Reason:    reason,
			Metadata:  string(meta),
		})
	}

	return snap, nil
}

// Diff computes the structural difference between two snapshot versions of a
// project.
func (s *Service) Diff(ctx context.Context, tenantID, projectID string, fromVersion, toVersion int) (*snapshot.VersionDiff, error) {
	if projectID == "" || fromVersion < 1 || toVersion < 1 {
		return nil, ErrInvalidInput
	}

	from, err := s.snapshots.GetByVersion(ctx, tenantID, projectID, fromVersion)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("loading snapshot v%d: %w", fromVersion, err)
	}
	to, err := s.snapshots.GetByVersion(ctx, tenantID, projectID, toVersion)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("loading snapshot v%d: %w", toVersion, err)
	}

	return snapshot.Diff(from, to), nil
}

// GetActive returns the project's active snapshot, or nil when no module has
// merged yet.
func (s *Service) GetActive(ctx context.Context, tenantID, projectID string) (*snapshot.Snapshot, error) {
	if projectID == "" {
		return nil, ErrInvalidInput
	}
	return s.loadActive(ctx, tenantID, projectID)
}

// GetByVersion returns one snapshot version.
func (s *Service) GetByVersion(ctx context.Context, tenantID, projectID string, version int) (*snapshot.Snapshot, error) {
	if projectID == "" || version < 1 {
		return nil, ErrInvalidInput
	}
	snap, err := s.snapshots.GetByVersion(ctx, tenantID, projectID, version)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("loading snapshot v%d: %w", version, err)
	}
	return snap, nil
}

// ListHistory returns all snapshot versions of a project, newest first.
func (s *Service) ListHistory(ctx context.Context, tenantID, projectID string) ([]snapshot.Summary, error) {
	if projectID == "" {
		return nil, ErrInvalidInput
	}
	return s.snapshots.ListByProject(ctx, tenantID, projectID)
}

// ListPendingReviews returns the unresolved review items for a project,
// optionally narrowed to one module.
func (s *Service) ListPendingReviews(ctx context.Context, tenantID, projectID string, moduleID *string) ([]conflict.ReviewItem, error) {
	if projectID == "" {
		return nil, ErrInvalidInput
	}
	return s.reviews.ListPending(ctx, tenantID, projectID, moduleID)
}

func (s *Service) loadModule(ctx context.Context, tenantID, id string) (*module.Module, error) {
	mod, err := s.modules.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("loading module: %w", err)
	}
	return mod, nil
}

func (s *Service) loadActive(ctx context.Context, tenantID, projectID string) (*snapshot.Snapshot, error) {
	active, err := s.snapshots.GetActive(ctx, tenantID, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading active snapshot: %w", err)
	}
	return active, nil
}

func (s *Service) persist(ctx context.Context, tenantID, projectID string, acc *Accumulator, actor string) (*snapshot.Snapshot, error) {
	snap, err := s.snapshots.Create(ctx, tenantID, &snapshot.Snapshot{
		TenantID:  tenantID,
		ProjectID: projectID,
		ModuleIDs: acc.ModuleIDs(),
		Nodes:     acc.Nodes(),
		Edges:     acc.Edges(),
		CreatedBy: actor,
	})
	if err != nil {
		return nil, fmt.Errorf("creating snapshot: %w", err)
	}
	return snap, nil
}

func (s *Service) raiseReviews(ctx context.Context, tenantID string, mod *module.Module, conflicts []conflict.Conflict, actor string) ([]conflict.ReviewItem, error) {
	now := time.Now()
	items := make([]conflict.ReviewItem, 0, len(conflicts))
	for _, c := range conflicts {
		item := conflict.ReviewItem{
			ID:        uuid.NewString(),
			TenantID:  tenantID,
			ProjectID: mod.ProjectID,
			ModuleID:  mod.ID,
			Type:      c.Type,
			NodeID:    c.NodeID,
			Message:   c.Message,
			Status:    conflict.StatusPending,
			CreatedAt: now,
		}
		if err := s.reviews.Create(ctx, tenantID, &item); err != nil {
			return nil, fmt.Errorf("creating review item: %w", err)
		}
		items = append(items, item)
	}

	s.logger.Warn("merge blocked by conflicts",
		"project_id", mod.ProjectID,
		"module_id", mod.ID,
		"conflicts", len(conflicts))

	if s.audits != nil {
		types := make([]string, len(conflicts))
		for i, c := range conflicts {
			types[i] = string(c.Type)
		}
		meta, _ := json.Marshal(map[string]any{"conflict_types": types})
		_ = s.audits.Append(ctx, tenantID, &audit.Entry{
			ProjectID: mod.ProjectID,
			ModuleID:  &mod.ID,
			Action:    audit.ActionConflictDetected,
			Actor:     actor,
			Metadata:  string(meta),
		})
	}

	return items, nil
}

func (s *Service) auditMerge(ctx context.Context, tenantID string, mod *module.Module, snap *snapshot.Snapshot, actor string) {
	s.logger.Info("module merged",
		"project_id", mod.ProjectID,
		"module_id", mod.ID,
		"version", snap.Version)

	if s.audits == nil {
		return
	}
	meta, _ := json.Marshal(map[string]any{
		"version":    snap.Version,
		"node_count": len(snap.Nodes),
		"edge_count": len(snap.Edges),
	})
	_ = s.audits.Append(ctx, tenantID, &audit.Entry{
		ProjectID: mod.ProjectID,
		ModuleID:  &mod.ID,
		Action:    audit.ActionModuleMerged,
		Actor:     actor,
		Metadata:  string(meta),
	})
}
