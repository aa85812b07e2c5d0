package snapshot

import (
	"time"

	"github.com/stackdraft/canon/internal/domain/graph"
)

// Snapshot is an immutable, versioned copy of a project's canonical graph at
// one point in merge history. Versions are unique and consecutive per
// project starting at 1; exactly one snapshot per project is active once any
// exists. Snapshots are never updated or deleted — rollback creates a new,
// later version with identical content.
type Snapshot struct {
	TenantID  string       `json:"tenant_id"`
	ProjectID string       `json:"project_id"`
	Version   int          `json:"version"`
	ModuleIDs []string     `json:"module_ids"`
	Nodes     []graph.Node `json:"nodes"`
	Edges     []graph.Edge `json:"edges"`
	Active    bool         `json:"active"`
	CreatedBy string       `json:"created_by"`
	CreatedAt time.Time    `json:"created_at"`
}

// HasModule reports whether the given module has been folded into this
// snapshot.
func (s *Snapshot) HasModule(moduleID string) bool {
	for _, id := range s.ModuleIDs {
		if id == moduleID {
			return true
		}
	}
	return false
}

// Summary is a lightweight representation for history listings.
type Summary struct {
	ProjectID string    `json:"project_id"`
	Version   int       `json:"version"`
	Active    bool      `json:"active"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
	Modules   int       `json:"modules"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary returns a lightweight summary of this snapshot.
func (s *Snapshot) Summary() Summary {
	return Summary{
		ProjectID: s.ProjectID,
		Version:   s.Version,
		Active:    s.Active,
		NodeCount: len(s.Nodes),
		EdgeCount: len(s.Edges),
		Modules:   len(s.ModuleIDs),
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
	}
}
