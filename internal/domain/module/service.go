package module

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stackdraft/canon/internal/domain/audit"
	"github.com/stackdraft/canon/internal/domain/graph"
	"github.com/stackdraft/canon/internal/repository"
	"github.com/google/uuid"
)

// Service handles the module proposal and approval workflow.
type Service struct {
	modules ModuleRepository
	audits  AuditRepository
	logger  *slog.Logger
}

// NewService creates a new module service.
func NewService(modules ModuleRepository, audits AuditRepository, logger *slog.Logger) *Service {
	return &Service{
		modules: modules,
		audits:  audits,
		logger:  logger,
	}
}

// ProposeRequest describes a module proposal.
type ProposeRequest struct {
	ID         string
	ProjectID  string
	Order      int
	Confidence Confidence
	Nodes      []graph.Node
	Edges      []graph.Edge
	Author     string
}

// TransitionRequest describes a status transition request.
type TransitionRequest struct {
	ID       string
	ToStatus Status
	Actor    string
	Reason   string
}

// Propose creates a new module in the proposed state.
func (s *Service) Propose(ctx context.Context, tenantID string, req ProposeRequest) (*Module, error) {
	if err := ValidateProposeInput(req); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now()
	mod := &Module{
		ID:         id,
		TenantID:   tenantID,
		ProjectID:  req.ProjectID,
		Order:      req.Order,
		Status:     StatusProposed,
		Confidence: req.Confidence,
		Nodes:      graph.CloneNodes(req.Nodes),
		Edges:      graph.CloneEdges(req.Edges),
		CreatedAt:  now,
		ModifiedAt: now,
	}

	if err := s.modules.Create(ctx, tenantID, mod); err != nil {
		return nil, fmt.Errorf("creating module: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Append(ctx, tenantID, &audit.Entry{
			ProjectID: mod.ProjectID,
			ModuleID:  &mod.ID,
			Action:    audit.ActionModuleProposed,
			Actor:     req.Author,
		})
	}

	return mod, nil
}

// Transition updates a module's workflow status with validation.
func (s *Service) Transition(ctx context.Context, tenantID string, req TransitionRequest) (*Module, error) {
	if req.ID == "" {
		return nil, ErrInvalidInput
	}

	mod, err := s.modules.Get(ctx, tenantID, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("loading module: %w", err)
	}

	if err := ValidateTransition(mod.Status, req.ToStatus); err != nil {
		return nil, err
	}

	if err := s.modules.UpdateStatus(ctx, tenantID, mod.ID, req.ToStatus); err != nil {
		return nil, fmt.Errorf("updating module status: %w", err)
	}
	mod.Status = req.ToStatus
	mod.ModifiedAt = time.Now()

	if s.audits != nil {
		_ = s.audits.Append(ctx, tenantID, &audit.Entry{
			ProjectID: mod.ProjectID,
			ModuleID:  &mod.ID,
			Action:    transitionAction(req.ToStatus),
			Actor:     req.Actor,
			Reason:    req.Reason,
		})
	}

	return mod, nil
}

// Get returns a module by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Module, error) {
	mod, err := s.modules.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("getting module: %w", err)
	}
	return mod, nil
}

// List returns module references based on options.
func (s *Service) List(ctx context.Context, tenantID string, opts ListModulesOptions) ([]ModuleRef, error) {
	return s.modules.List(ctx, tenantID, opts)
}

func transitionAction(to Status) audit.Action {
	switch to {
	case StatusApproved:
		return audit.ActionModuleApproved
	case StatusRejected:
		return audit.ActionModuleRejected
	default:
		return audit.ActionModuleModified
	}
}
