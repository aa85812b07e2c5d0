package snapshot

import "github.com/stackdraft/canon/internal/domain/graph"

// VersionDiff describes the structural difference between two snapshots.
// Node sets are compared by ID membership and edge sets by (from, to) key
// membership; no attribute-level diff is computed for elements present in
// both. The diff is directional: swapping from and to swaps the added and
// removed sets and negates the count deltas.
type VersionDiff struct {
	FromVersion     int          `json:"from_version"`
	ToVersion       int          `json:"to_version"`
	AddedNodes      []graph.Node `json:"added_nodes"`
	RemovedNodes    []graph.Node `json:"removed_nodes"`
	AddedEdges      []graph.Edge `json:"added_edges"`
	RemovedEdges    []graph.Edge `json:"removed_edges"`
	NodeCountChange int          `json:"node_count_change"`
	EdgeCountChange int          `json:"edge_count_change"`
}

// Diff computes the difference between two snapshots of the same project.
// Added elements preserve their order in to; removed elements preserve their
// order in from.
func Diff(from, to *Snapshot) *VersionDiff {
	if from == nil || to == nil {
		return nil
	}

	fromNodes := make(map[string]bool, len(from.Nodes))
	for _, n := range from.Nodes {
		fromNodes[n.ID] = true
	}
	toNodes := make(map[string]bool, len(to.Nodes))
	for _, n := range to.Nodes {
		toNodes[n.ID] = true
	}

	fromEdges := make(map[string]bool, len(from.Edges))
	for _, e := range from.Edges {
		fromEdges[e.Key()] = true
	}
	toEdges := make(map[string]bool, len(to.Edges))
	for _, e := range to.Edges {
		toEdges[e.Key()] = true
	}

	diff := &VersionDiff{
		FromVersion:     from.Version,
		ToVersion:       to.Version,
		AddedNodes:      []graph.Node{},
		RemovedNodes:    []graph.Node{},
		AddedEdges:      []graph.Edge{},
		RemovedEdges:    []graph.Edge{},
		NodeCountChange: len(to.Nodes) - len(from.Nodes),
		EdgeCountChange: len(to.Edges) - len(from.Edges),
	}

	for _, n := range to.Nodes {
		if !fromNodes[n.ID] {
			diff.AddedNodes = append(diff.AddedNodes, n)
		}
	}
	for _, n := range from.Nodes {
		if !toNodes[n.ID] {
			diff.RemovedNodes = append(diff.RemovedNodes, n)
		}
	}
	for _, e := range to.Edges {
		if !fromEdges[e.Key()] {
			diff.AddedEdges = append(diff.AddedEdges, e)
		}
	}
	for _, e := range from.Edges {
		if !toEdges[e.Key()] {
			diff.RemovedEdges = append(diff.RemovedEdges, e)
		}
	}

	return diff
}
