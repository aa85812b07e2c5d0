package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/stackdraft/canon/internal/domain/audit"
	"github.com/stackdraft/canon/internal/domain/conflict"
	"github.com/stackdraft/canon/internal/domain/module"
	"github.com/stackdraft/canon/internal/domain/project"
	"github.com/stackdraft/canon/internal/domain/snapshot"
)

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, tenantID string, proj *project.Project) error {
	args := m.Called(ctx, tenantID, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, tenantID, id string) (*project.Project, error) {
	args := m.Called(ctx, tenantID, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) GetDefault(ctx context.Context, tenantID string) (*project.Project, error) {
	args := m.Called(ctx, tenantID)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, tenantID string) ([]project.ProjectSummary, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]project.ProjectSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ModuleRepository is a mock for repository.ModuleRepository.
type ModuleRepository struct {
	mock.Mock
}

func (m *ModuleRepository) Create(ctx context.Context, tenantID string, mod *module.Module) error {
	args := m.Called(ctx, tenantID, mod)
	return args.Error(0)
}

func (m *ModuleRepository) Get(ctx context.Context, tenantID, id string) (*module.Module, error) {
	args := m.Called(ctx, tenantID, id)
	if mod, ok := args.Get(0).(*module.Module); ok {
		return mod, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ModuleRepository) UpdateStatus(ctx context.Context, tenantID, id string, status module.Status) error {
	args := m.Called(ctx, tenantID, id, status)
	return args.Error(0)
}

func (m *ModuleRepository) List(ctx context.Context, tenantID string, opts module.ListModulesOptions) ([]module.ModuleRef, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]module.ModuleRef); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SnapshotRepository is a mock for repository.SnapshotRepository.
type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) Create(ctx context.Context, tenantID string, snap *snapshot.Snapshot) (*snapshot.Snapshot, error) {
	args := m.Called(ctx, tenantID, snap)
	if created, ok := args.Get(0).(*snapshot.Snapshot); ok {
		return created, args.Error(1)
	}
	if args.Error(1) == nil {
		// Echo the input like the real repository; tests fill the assigned
		// version through a Run callback.
		return snap, nil
	}
	return nil, args.Error(1)
}

func (m *SnapshotRepository) GetActive(ctx context.Context, tenantID, projectID string) (*snapshot.Snapshot, error) {
	args := m.Called(ctx, tenantID, projectID)
	if snap, ok := args.Get(0).(*snapshot.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SnapshotRepository) GetByVersion(ctx context.Context, tenantID, projectID string, version int) (*snapshot.Snapshot, error) {
	args := m.Called(ctx, tenantID, projectID, version)
	if snap, ok := args.Get(0).(*snapshot.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SnapshotRepository) ListByProject(ctx context.Context, tenantID, projectID string) ([]snapshot.Summary, error) {
	args := m.Called(ctx, tenantID, projectID)
	if list, ok := args.Get(0).([]snapshot.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ReviewRepository is a mock for repository.ReviewRepository.
type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) Create(ctx context.Context, tenantID string, item *conflict.ReviewItem) error {
	args := m.Called(ctx, tenantID, item)
	return args.Error(0)
}

func (m *ReviewRepository) Get(ctx context.Context, tenantID, id string) (*conflict.ReviewItem, error) {
	args := m.Called(ctx, tenantID, id)
	if item, ok := args.Get(0).(*conflict.ReviewItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewRepository) ListPending(ctx context.Context, tenantID, projectID string, moduleID *string) ([]conflict.ReviewItem, error) {
	args := m.Called(ctx, tenantID, projectID, moduleID)
	if list, ok := args.Get(0).([]conflict.ReviewItem); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewRepository) Resolve(ctx context.Context, tenantID, id string, resolvedAt time.Time) error {
	args := m.Called(ctx, tenantID, id, resolvedAt)
	return args.Error(0)
}

// AuditRepository is a mock for repository.AuditRepository.
type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) Append(ctx context.Context, tenantID string, entry *audit.Entry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *AuditRepository) List(ctx context.Context, tenantID string, opts audit.ListOptions) ([]audit.Entry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]audit.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
