package module

import (
	"time"

	"github.com/stackdraft/canon/internal/domain/graph"
)

// Status represents the approval-workflow state of a module
type Status string

const (
	StatusProposed Status = "proposed"
	StatusApproved Status = "approved"
	StatusModified Status = "modified"
	StatusRejected Status = "rejected"
)

// Confidence grades how trustworthy a module's content is. Low-confidence
// modules are always routed through review before merging.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Module is a proposed, approvable unit of graph content contributed toward
// a project's architecture. Its nodes and edges are immutable once the
// module has been folded into a snapshot.
type Module struct {
	ID         string       `json:"id"`
	TenantID   string       `json:"tenant_id"`
	ProjectID  string       `json:"project_id"`
	Order      int          `json:"order"`
	Status     Status       `json:"status"`
	Confidence Confidence   `json:"confidence"`
	Nodes      []graph.Node `json:"nodes"`
	Edges      []graph.Edge `json:"edges"`
	CreatedAt  time.Time    `json:"created_at"`
	ModifiedAt time.Time    `json:"modified_at"`
}

// ModuleRef is a lightweight reference for listing
type ModuleRef struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	Order      int        `json:"order"`
	Status     Status     `json:"status"`
	Confidence Confidence `json:"confidence"`
	NodeCount  int        `json:"node_count"`
	EdgeCount  int        `json:"edge_count"`
}

// Ref returns a lightweight reference to the module.
func (m *Module) Ref() ModuleRef {
	return ModuleRef{
		ID:         m.ID,
		ProjectID:  m.ProjectID,
		Order:      m.Order,
		Status:     m.Status,
		Confidence: m.Confidence,
		NodeCount:  len(m.Nodes),
		EdgeCount:  len(m.Edges),
	}
}
