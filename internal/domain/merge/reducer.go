package merge

import (
	"github.com/stackdraft/canon/internal/domain/conflict"
	"github.com/stackdraft/canon/internal/domain/graph"
	"github.com/stackdraft/canon/internal/domain/module"
	"github.com/stackdraft/canon/internal/domain/snapshot"
)

// Accumulator folds module content into a canonical graph. It is a pure
// in-memory reducer: the same seed and the same module sequence always
// produce the same node and edge sets, in first-seen order. Persistence and
// conflict policy live elsewhere.
type Accumulator struct {
	nodes     []graph.Node
	nodeIdx   map[string]int
	edges     []graph.Edge
	edgeIdx   map[string]int
	moduleIDs []string
}

// NewAccumulator seeds an accumulator from a snapshot. A nil seed starts
// from an empty graph.
func NewAccumulator(seed *snapshot.Snapshot) *Accumulator {
	acc := &Accumulator{
		nodeIdx: make(map[string]int),
		edgeIdx: make(map[string]int),
	}
	if seed == nil {
		return acc
	}
	for _, n := range graph.CloneNodes(seed.Nodes) {
		acc.nodeIdx[n.ID] = len(acc.nodes)
		acc.nodes = append(acc.nodes, n)
	}
	for _, e := range graph.CloneEdges(seed.Edges) {
		acc.edgeIdx[e.Key()] = len(acc.edges)
		acc.edges = append(acc.edges, e)
	}
	acc.moduleIDs = append(acc.moduleIDs, seed.ModuleIDs...)
	return acc
}

// Apply folds a module into the accumulated graph.
//
// Nodes deduplicate by ID: a high-confidence module overwrites the existing
// type and label, lower confidence keeps them; meta bags always shallow-merge
// with incoming keys winning. Edges deduplicate by (from, to): meta bags
// union and an empty label is filled from the incoming edge. Edges whose
// endpoints are absent after the module's nodes are folded are dropped
// silently.
func (a *Accumulator) Apply(mod module.Module) {
	for _, n := range mod.Nodes {
		idx, ok := a.nodeIdx[n.ID]
		if !ok {
			n.Meta = graph.CloneMeta(n.Meta)
			a.nodeIdx[n.ID] = len(a.nodes)
			a.nodes = append(a.nodes, n)
			continue
		}
		existing := a.nodes[idx]
		if mod.Confidence == module.ConfidenceHigh {
			existing.Type = n.Type
			existing.Label = n.Label
		}
		existing.Meta = graph.MergeMeta(existing.Meta, n.Meta)
		a.nodes[idx] = existing
	}

	a.applyEdges(mod.Edges)
	a.recordModule(mod.ID)
}

// ApplyResolved folds a previously conflicted module using an explicit
// resolution action instead of the default confidence policy.
func (a *Accumulator) ApplyResolved(mod module.Module, res conflict.Resolution) {
	nodes := mod.Nodes
	edges := mod.Edges

	if res == conflict.ResolutionRenameKeepBoth {
		nodes, edges = a.renameCollisions(mod)
	}

	for _, n := range nodes {
		idx, ok := a.nodeIdx[n.ID]
		if !ok {
			n.Meta = graph.CloneMeta(n.Meta)
			a.nodeIdx[n.ID] = len(a.nodes)
			a.nodes = append(a.nodes, n)
			continue
		}
		existing := a.nodes[idx]
		switch res {
		case conflict.ResolutionApplyIncoming:
			existing.Type = n.Type
			existing.Label = n.Label
			existing.Meta = graph.MergeMeta(existing.Meta, n.Meta)
		case conflict.ResolutionKeepCanonical:
			// Canonical keys win; only novel incoming keys land.
			existing.Meta = graph.MergeMeta(n.Meta, existing.Meta)
		case conflict.ResolutionMergeMeta:
			existing.Meta = graph.MergeMeta(existing.Meta, n.Meta)
		}
		a.nodes[idx] = existing
	}

	a.applyEdges(edges)
	a.recordModule(mod.ID)
}

// renameCollisions rewrites incoming node IDs that collide with the
// accumulated set, suffixing the module ID, and rewrites the module's own
// edges to match. Edges referencing canonical nodes outside the module keep
// their original endpoints.
func (a *Accumulator) renameCollisions(mod module.Module) ([]graph.Node, []graph.Edge) {
	renamed := make(map[string]string)
	nodes := make([]graph.Node, len(mod.Nodes))
	for i, n := range mod.Nodes {
		if _, ok := a.nodeIdx[n.ID]; ok {
			newID := n.ID + "__" + mod.ID
			renamed[n.ID] = newID
			n.ID = newID
		}
		nodes[i] = n
	}

	edges := make([]graph.Edge, len(mod.Edges))
	for i, e := range mod.Edges {
		if to, ok := renamed[e.From]; ok {
			e.From = to
		}
		if to, ok := renamed[e.To]; ok {
			e.To = to
		}
		edges[i] = e
	}
	return nodes, edges
}

func (a *Accumulator) applyEdges(edges []graph.Edge) {
	for _, e := range edges {
		if _, ok := a.nodeIdx[e.From]; !ok {
			continue
		}
		if _, ok := a.nodeIdx[e.To]; !ok {
			continue
		}
		idx, ok := a.edgeIdx[e.Key()]
		if !ok {
			e.Meta = graph.CloneMeta(e.Meta)
			a.edgeIdx[e.Key()] = len(a.edges)
			a.edges = append(a.edges, e)
			continue
		}
		existing := a.edges[idx]
		if existing.Label == "" && e.Label != "" {
			existing.Label = e.Label
		}
		existing.Meta = graph.MergeMeta(existing.Meta, e.Meta)
		a.edges[idx] = existing
	}
}

func (a *Accumulator) recordModule(id string) {
	for _, existing := range a.moduleIDs {
		if existing == id {
			return
		}
	}
	a.moduleIDs = append(a.moduleIDs, id)
}

// Nodes returns a copy of the accumulated node set in first-seen order.
func (a *Accumulator) Nodes() []graph.Node {
	return graph.CloneNodes(a.nodes)
}

// Edges returns a copy of the accumulated edge set in first-seen order.
func (a *Accumulator) Edges() []graph.Edge {
	return graph.CloneEdges(a.edges)
}

// ModuleIDs returns the IDs of the modules folded so far, in fold order.
func (a *Accumulator) ModuleIDs() []string {
	out := make([]string, len(a.moduleIDs))
	copy(out, a.moduleIDs)
	return out
}

// HasModule reports whether the module has already been folded.
func (a *Accumulator) HasModule(id string) bool {
	for _, existing := range a.moduleIDs {
		if existing == id {
			return true
		}
	}
	return false
}
