package audit

import "time"

// Action identifies the kind of administrative or merge event being recorded
type Action string

const (
	ActionModuleProposed   Action = "module_proposed"
	ActionModuleApproved   Action = "module_approved"
	ActionModuleRejected   Action = "module_rejected"
	ActionModuleModified   Action = "module_modified"
	ActionModuleMerged     Action = "module_merged"
	ActionConflictDetected Action = "conflict_detected"
	ActionConflictResolved Action = "conflict_resolved"
	ActionRollback         Action = "rollback"
)

// Entry is an append-only audit record written as a side effect of merges,
// conflicts, and rollbacks. The core never reads it back.
type Entry struct {
	ID        int64     `json:"id"`
	TenantID  string    `json:"tenant_id"`
	ProjectID string    `json:"project_id"`
	ModuleID  *string   `json:"module_id,omitempty"`
	Action    Action    `json:"action"`
	Actor     string    `json:"actor"`
	Reason    string    `json:"reason,omitempty"`
	Metadata  string    `json:"metadata,omitempty"` // JSON string
	CreatedAt time.Time `json:"created_at"`
}
