package graph

// Node is a single element of a project's canonical architecture graph.
// ID is unique within the canonical graph; Type is a semantic tag such as
// "gateway", "database", or "service".
type Node struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Label string         `json:"label"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// Edge is a directed connection between two nodes. At most one logical edge
// exists per ordered (From, To) pair in the canonical graph.
type Edge struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Label string         `json:"label,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// EdgeKey returns the identity key for the ordered (from, to) pair.
func EdgeKey(from, to string) string {
	return from + "->" + to
}

// Key returns the edge's identity key.
func (e Edge) Key() string {
	return EdgeKey(e.From, e.To)
}

// MergeMeta shallow-merges incoming into existing: incoming keys win on
// collision, non-conflicting keys from both survive. Nested values are
// replaced wholesale, never merged recursively.
func MergeMeta(existing, incoming map[string]any) map[string]any {
	if existing == nil && incoming == nil {
		return nil
	}
	merged := make(map[string]any, len(existing)+len(incoming))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}

// CloneMeta returns a shallow copy of meta so folded state never aliases
// module content.
func CloneMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	clone := make(map[string]any, len(meta))
	for k, v := range meta {
		clone[k] = v
	}
	return clone
}

// CloneNodes returns a copy of nodes with cloned meta bags.
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	clones := make([]Node, len(nodes))
	for i, n := range nodes {
		n.Meta = CloneMeta(n.Meta)
		clones[i] = n
	}
	return clones
}

// CloneEdges returns a copy of edges with cloned meta bags.
func CloneEdges(edges []Edge) []Edge {
	if edges == nil {
		return nil
	}
	clones := make([]Edge, len(edges))
	for i, e := range edges {
		e.Meta = CloneMeta(e.Meta)
		clones[i] = e
	}
	return clones
}
