package module

import (
	"context"

	"github.com/stackdraft/canon/internal/domain/audit"
)

// ModuleRepository provides persistence for modules.
type ModuleRepository interface {
	Create(ctx context.Context, tenantID string, mod *Module) error
	Get(ctx context.Context, tenantID, id string) (*Module, error)
	UpdateStatus(ctx context.Context, tenantID, id string, status Status) error
	List(ctx context.Context, tenantID string, opts ListModulesOptions) ([]ModuleRef, error)
}

// AuditRepository records module workflow actions.
type AuditRepository interface {
	Append(ctx context.Context, tenantID string, entry *audit.Entry) error
}
