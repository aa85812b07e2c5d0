package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stackdraft/canon/internal/domain/audit"
	"github.com/stackdraft/canon/internal/domain/conflict"
	"github.com/stackdraft/canon/internal/domain/merge"
	"github.com/stackdraft/canon/internal/domain/module"
	"github.com/stackdraft/canon/internal/domain/project"
	"github.com/stackdraft/canon/internal/domain/snapshot"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, tenantID string, req project.CreateRequest) (*project.Project, error)
	List(ctx context.Context, tenantID string) ([]project.ProjectSummary, error)
	Get(ctx context.Context, tenantID, id string) (*project.Project, error)
	GetDefault(ctx context.Context, tenantID string) (*project.Project, error)
}

// ModuleService defines module workflow operations needed by MCP.
type ModuleService interface {
	Propose(ctx context.Context, tenantID string, req module.ProposeRequest) (*module.Module, error)
	Transition(ctx context.Context, tenantID string, req module.TransitionRequest) (*module.Module, error)
	Get(ctx context.Context, tenantID, id string) (*module.Module, error)
	List(ctx context.Context, tenantID string, opts module.ListModulesOptions) ([]module.ModuleRef, error)
}

// MergeService defines merge-path operations needed by MCP.
type MergeService interface {
	SubmitModule(ctx context.Context, tenantID, moduleID, actor string) (*merge.MergeResult, error)
	MergeApproved(ctx context.Context, tenantID, projectID, actor string) (*merge.BatchResult, error)
	Resubmit(ctx context.Context, tenantID, moduleID string, res conflict.Resolution, actor, reason string) (*merge.MergeResult, error)
	Rollback(ctx context.Context, tenantID, projectID string, version int, actor, reason string) (*snapshot.Snapshot, error)
	Diff(ctx context.Context, tenantID, projectID string, fromVersion, toVersion int) (*snapshot.VersionDiff, error)
	GetActive(ctx context.Context, tenantID, projectID string) (*snapshot.Snapshot, error)
	GetByVersion(ctx context.Context, tenantID, projectID string, version int) (*snapshot.Snapshot, error)
	ListHistory(ctx context.Context, tenantID, projectID string) ([]snapshot.Summary, error)
	ListPendingReviews(ctx context.Context, tenantID, projectID string, moduleID *string) ([]conflict.ReviewItem, error)
}

// AuditService defines audit operations needed by MCP.
type AuditService interface {
	GetRecent(ctx context.Context, tenantID string, opts audit.ListOptions) ([]audit.Entry, error)
}

// Handler dispatches MCP commands.
type Handler struct {
	projects ProjectService
	modules  ModuleService
	merges   MergeService
	audits   AuditService
}

// NewHandler creates a new MCP handler.
func NewHandler(projects ProjectService, modules ModuleService, merges MergeService, audits AuditService) *Handler {
	return &Handler{
		projects: projects,
		modules:  modules,
		merges:   merges,
		audits:   audits,
	}
}

// Handle dispatches MCP requests to domain services. The session ID stands in
// as the acting identity when a tool call carries no explicit actor.
func (h *Handler) Handle(ctx context.Context, tenantID, sessionID, method string, params json.RawMessage) (any, error) {
	switch method {
	case "create_project":
		var req CreateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.projects.Create(ctx, tenantID, project.CreateRequest{
			ID:          req.ID,
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return proj, nil
	case "list_projects":
		projects, err := h.projects.List(ctx, tenantID)
		if err != nil {
			return nil, mapError(err)
		}
		return projects, nil
	case "get_project":
		var req GetProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.getProjectOrDefault(ctx, tenantID, req.ID)
		if err != nil {
			return nil, err
		}
		return proj, nil
	case "get_project_overview":
		var req GetProjectOverviewParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.projectOverview(ctx, tenantID, req.ProjectID)
	case "propose_module":
		var req ProposeModuleParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.getProjectOrDefault(ctx, tenantID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		author := req.Author
		if author == "" {
			author = sessionID
		}
		mod, err := h.modules.Propose(ctx, tenantID, module.ProposeRequest{
			ID:         req.ID,
			ProjectID:  proj.ID,
			Order:      req.Order,
			Confidence: req.Confidence,
			Nodes:      req.Nodes,
			Edges:      req.Edges,
			Author:     author,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return mod, nil
	case "list_modules":
		var req ListModulesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.getProjectOrDefault(ctx, tenantID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		refs, err := h.modules.List(ctx, tenantID, module.ListModulesOptions{
			ProjectID: proj.ID,
			Statuses:  req.Statuses,
			Limit:     req.Limit,
			Offset:    req.Offset,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return ListModulesResponse{Modules: refs}, nil
	case "get_module":
		var req GetModuleParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		mod, err := h.modules.Get(ctx, tenantID, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return mod, nil
	case "approve_module":
		return h.transitionModule(ctx, tenantID, sessionID, params, module.StatusApproved)
	case "reject_module":
		return h.transitionModule(ctx, tenantID, sessionID, params, module.StatusRejected)
	case "submit_module":
		var req SubmitModuleParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		result, err := h.merges.SubmitModule(ctx, tenantID, req.ID, actorOrSession(req.Actor, sessionID))
		if err != nil {
			return nil, mapError(err)
		}
		return SubmitModuleResponse{
			Merged:    result.Merged,
			Snapshot:  result.Snapshot,
			Conflicts: result.Conflicts,
			Reviews:   result.Reviews,
		}, nil
	case "merge_approved":
		var req MergeApprovedParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.getProjectOrDefault(ctx, tenantID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		result, err := h.merges.MergeApproved(ctx, tenantID, proj.ID, actorOrSession(req.Actor, sessionID))
		if err != nil {
			return nil, mapError(err)
		}
		return MergeApprovedResponse{Merged: result.Merged, Blocked: result.Blocked}, nil
	case "resubmit_module":
		var req ResubmitModuleParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		result, err := h.merges.Resubmit(ctx, tenantID, req.ID, req.Resolution, actorOrSession(req.Actor, sessionID), req.Reason)
		if err != nil {
			return nil, mapError(err)
		}
		return SubmitModuleResponse{
			Merged:    result.Merged,
			Snapshot:  result.Snapshot,
			Conflicts: result.Conflicts,
			Reviews:   result.Reviews,
		}, nil
	case "list_reviews":
		var req ListReviewsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.getProjectOrDefault(ctx, tenantID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		reviews, err := h.merges.ListPendingReviews(ctx, tenantID, proj.ID, req.ModuleID)
		if err != nil {
			return nil, mapError(err)
		}
		if reviews == nil {
			reviews = []conflict.ReviewItem{}
		}
		return ListReviewsResponse{Reviews: reviews}, nil
	case "get_snapshot":
		var req GetSnapshotParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.getProjectOrDefault(ctx, tenantID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		if req.Version > 0 {
			snap, err := h.merges.GetByVersion(ctx, tenantID, proj.ID, req.Version)
			if err != nil {
				return nil, mapError(err)
			}
			return snap, nil
		}
		snap, err := h.merges.GetActive(ctx, tenantID, proj.ID)
		if err != nil {
			return nil, mapError(err)
		}
		if snap == nil {
			return map[string]any{"active": nil, "message": "no snapshot yet; no module has merged"}, nil
		}
		return snap, nil
	case "list_history":
		var req ListHistoryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.getProjectOrDefault(ctx, tenantID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		versions, err := h.merges.ListHistory(ctx, tenantID, proj.ID)
		if err != nil {
			return nil, mapError(err)
		}
		if versions == nil {
			versions = []snapshot.Summary{}
		}
		return ListHistoryResponse{Versions: versions}, nil
	case "diff_versions":
		var req DiffVersionsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.getProjectOrDefault(ctx, tenantID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		diff, err := h.merges.Diff(ctx, tenantID, proj.ID, req.FromVersion, req.ToVersion)
		if err != nil {
			return nil, mapError(err)
		}
		return diff, nil
	case "rollback":
		var req RollbackParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.getProjectOrDefault(ctx, tenantID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		snap, err := h.merges.Rollback(ctx, tenantID, proj.ID, req.Version, actorOrSession(req.Actor, sessionID), req.Reason)
		if err != nil {
			return nil, mapError(err)
		}
		return snap, nil
	case "get_recent_audit":
		var req GetRecentAuditParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.getProjectOrDefault(ctx, tenantID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		entries, err := h.audits.GetRecent(ctx, tenantID, audit.ListOptions{
			ProjectID: proj.ID,
			ModuleID:  req.ModuleID,
			Limit:     req.Limit,
			Offset:    req.Offset,
		})
		if err != nil {
			return nil, mapError(err)
		}
		if entries == nil {
			entries = []audit.Entry{}
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func (h *Handler) transitionModule(ctx context.Context, tenantID, sessionID string, params json.RawMessage, to module.Status) (any, error) {
	var req ModuleDecisionParams
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	mod, err := h.modules.Transition(ctx, tenantID, module.TransitionRequest{
		ID:       req.ID,
		ToStatus: to,
		Actor:    actorOrSession(req.Actor, sessionID),
		Reason:   req.Reason,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return mod, nil
}

func (h *Handler) projectOverview(ctx context.Context, tenantID, projectID string) (any, error) {
	proj, err := h.getProjectOrDefault(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	refs, err := h.modules.List(ctx, tenantID, module.ListModulesOptions{ProjectID: proj.ID})
	if err != nil {
		return nil, mapError(err)
	}
	if refs == nil {
		refs = []module.ModuleRef{}
	}

	reviews, err := h.merges.ListPendingReviews(ctx, tenantID, proj.ID, nil)
	if err != nil {
		return nil, mapError(err)
	}

	resp := ProjectOverviewResponse{
		Project:        *proj,
		Modules:        refs,
		PendingReviews: len(reviews),
	}

	active, err := h.merges.GetActive(ctx, tenantID, proj.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if active != nil {
		summary := active.Summary()
		resp.ActiveSnapshot = &summary
	}

	return resp, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, out)
}

func (h *Handler) getProjectOrDefault(ctx context.Context, tenantID, projectID string) (*project.Project, error) {
	var proj *project.Project
	var err error
	if projectID == "" {
		proj, err = h.projects.GetDefault(ctx, tenantID)
	} else {
		proj, err = h.projects.Get(ctx, tenantID, projectID)
	}
	if err != nil {
		return nil, mapError(err)
	}
	return proj, nil
}

func actorOrSession(actor, sessionID string) string {
	if actor != "" {
		return actor
	}
	return sessionID
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
