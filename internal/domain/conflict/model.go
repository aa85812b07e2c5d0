package conflict

import "time"

// Type classifies a detected incompatibility
type Type string

const (
	TypeNodeTypeMismatch  Type = "node_type_mismatch"
	TypeLowConfidence     Type = "low_confidence"
	TypeDatabasePlurality Type = "database_plurality"
	TypeGatewayPlurality  Type = "gateway_plurality"
)

// Status represents the review workflow state of a persisted conflict
type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
)

// Conflict describes one incompatibility between an incoming module and the
// canonical graph. It is a value result of detection, not an error.
type Conflict struct {
	Type    Type   `json:"type"`
	NodeID  string `json:"node_id,omitempty"`
	Message string `json:"message"`
}

// ReviewItem is a persisted conflict awaiting admin resolution.
type ReviewItem struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	ProjectID  string     `json:"project_id"`
	ModuleID   string     `json:"module_id"`
	Type       Type       `json:"type"`
	NodeID     string     `json:"node_id,omitempty"`
	Message    string     `json:"message"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// Resolution is the action an admin chooses when resubmitting a conflicted
// module.
type Resolution string

const (
	ResolutionApplyIncoming  Resolution = "apply_incoming"
	ResolutionKeepCanonical  Resolution = "keep_canonical"
	ResolutionMergeMeta      Resolution = "merge_meta"
	ResolutionRenameKeepBoth Resolution = "rename_and_keep_both"
)

// ValidResolution reports whether r is a known resolution action.
func ValidResolution(r Resolution) bool {
	switch r {
	case ResolutionApplyIncoming, ResolutionKeepCanonical, ResolutionMergeMeta, ResolutionRenameKeepBoth:
		return true
	}
	return false
}
