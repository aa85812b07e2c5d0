package mcp

import (
	"github.com/stackdraft/canon/internal/domain/conflict"
	"github.com/stackdraft/canon/internal/domain/graph"
	"github.com/stackdraft/canon/internal/domain/merge"
	"github.com/stackdraft/canon/internal/domain/module"
	"github.com/stackdraft/canon/internal/domain/project"
	"github.com/stackdraft/canon/internal/domain/snapshot"
)

type CreateProjectParams struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type GetProjectParams struct {
	ID string `json:"id,omitempty"`
}

type GetProjectOverviewParams struct {
	ProjectID string `json:"project_id,omitempty"`
}

type ProposeModuleParams struct {
	ID         string            `json:"id,omitempty"`
	ProjectID  string            `json:"project_id,omitempty"`
	Order      int               `json:"order"`
	Confidence module.Confidence `json:"confidence"`
	Nodes      []graph.Node      `json:"nodes"`
	Edges      []graph.Edge      `json:"edges,omitempty"`
	Author     string            `json:"author,omitempty"`
}

type ListModulesParams struct {
	ProjectID string          `json:"project_id,omitempty"`
	Statuses  []module.Status `json:"statuses,omitempty"`
	Limit     int             `json:"limit,omitempty"`
	Offset    int             `json:"offset,omitempty"`
}

type GetModuleParams struct {
	ID string `json:"id"`
}

type ModuleDecisionParams struct {
	ID     string `json:"id"`
	Actor  string `json:"actor,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type SubmitModuleParams struct {
	ID    string `json:"id"`
	Actor string `json:"actor,omitempty"`
}

type MergeApprovedParams struct {
	ProjectID string `json:"project_id,omitempty"`
	Actor     string `json:"actor,omitempty"`
}

type ResubmitModuleParams struct {
	ID         string              `json:"id"`
	Resolution conflict.Resolution `json:"resolution"`
	Actor      string              `json:"actor,omitempty"`
	Reason     string              `json:"reason,omitempty"`
}

type ListReviewsParams struct {
	ProjectID string  `json:"project_id,omitempty"`
	ModuleID  *string `json:"module_id,omitempty"`
}

type GetSnapshotParams struct {
	ProjectID string `json:"project_id,omitempty"`
	Version   int    `json:"version,omitempty"`
}

type ListHistoryParams struct {
	ProjectID string `json:"project_id,omitempty"`
}

type DiffVersionsParams struct {
	ProjectID   string `json:"project_id,omitempty"`
	FromVersion int    `json:"from_version"`
	ToVersion   int    `json:"to_version"`
}

type RollbackParams struct {
	ProjectID string `json:"project_id,omitempty"`
	Version   int    `json:"version"`
	Actor     string `json:"actor,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

type GetRecentAuditParams struct {
	ProjectID string  `json:"project_id,omitempty"`
	ModuleID  *string `json:"module_id,omitempty"`
	Limit     int     `json:"limit,omitempty"`
	Offset    int     `json:"offset,omitempty"`
}

type ProjectOverviewResponse struct {
	Project        project.Project    `json:"project"`
	ActiveSnapshot *snapshot.Summary  `json:"active_snapshot,omitempty"`
	Modules        []module.ModuleRef `json:"modules"`
	PendingReviews int                `json:"pending_reviews"`
}

type ListModulesResponse struct {
	Modules []module.ModuleRef `json:"modules"`
}

type SubmitModuleResponse struct {
	Merged    bool                  `json:"merged"`
	Snapshot  *snapshot.Snapshot    `json:"snapshot,omitempty"`
	Conflicts []conflict.Conflict   `json:"conflicts,omitempty"`
	Reviews   []conflict.ReviewItem `json:"reviews,omitempty"`
}

type MergeApprovedResponse struct {
	Merged  []merge.MergedModule  `json:"merged"`
	Blocked []merge.BlockedModule `json:"blocked"`
}

type ListReviewsResponse struct {
	Reviews []conflict.ReviewItem `json:"reviews"`
}

type ListHistoryResponse struct {
	Versions []snapshot.Summary `json:"versions"`
}
