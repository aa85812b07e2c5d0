package conflict

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stackdraft/canon/internal/domain/graph"
	"github.com/stackdraft/canon/internal/domain/module"
)

// Detector inspects incoming module content against the accumulated
// canonical node set and flags semantic conflicts. Detection runs before the
// module is folded in; it never mutates either side.
type Detector struct {
	rules []Rule
}

// NewDetector creates a detector with the given singleton rules. Rules are
// evaluated in the order given.
func NewDetector(rules []Rule) *Detector {
	return &Detector{rules: rules}
}

// Detect compares an incoming module against the current canonical node set
// and returns all conflicts found. An empty result means the module can be
// folded in automatically.
func (d *Detector) Detect(mod module.Module, canonical []graph.Node) []Conflict {
	var conflicts []Conflict

	// Low-confidence output is inherently review-worthy, regardless of
	// structural cleanliness.
	if mod.Confidence == module.ConfidenceLow {
		conflicts = append(conflicts, Conflict{
			Type:    TypeLowConfidence,
			Message: fmt.Sprintf("module %s has low confidence and requires review", mod.ID),
		})
	}

	byID := make(map[string]graph.Node, len(canonical))
	for _, n := range canonical {
		byID[n.ID] = n
	}

	for _, n := range mod.Nodes {
		existing, ok := byID[n.ID]
		if ok && existing.Type != n.Type {
			conflicts = append(conflicts, Conflict{
				Type:   TypeNodeTypeMismatch,
				NodeID: n.ID,
				Message: fmt.Sprintf("node %q is %q in the canonical graph but %q in the incoming module",
					n.ID, existing.Type, n.Type),
			})
		}
	}

	for _, rule := range d.rules {
		if c := d.checkSingleton(rule, mod, canonical, byID); c != nil {
			conflicts = append(conflicts, *c)
		}
	}

	return conflicts
}

// checkSingleton applies one singleton rule: overlay the incoming module's
// nodes onto the canonical set by ID and collect the distinct identifying
// attribute values among nodes of the rule's type. More than one distinct
// value means incompatible singletons coexist.
func (d *Detector) checkSingleton(rule Rule, mod module.Module, canonical []graph.Node, byID map[string]graph.Node) *Conflict {
	incoming := false
	for _, n := range mod.Nodes {
		if n.Type == rule.NodeType {
			incoming = true
			break
		}
	}
	if !incoming {
		return nil
	}

	overlay := make(map[string]graph.Node)
	for _, n := range canonical {
		if n.Type == rule.NodeType {
			overlay[n.ID] = n
		}
	}
	for _, n := range mod.Nodes {
		if n.Type == rule.NodeType {
			// Incoming meta wins on key collision, matching fold semantics.
			n.Meta = graph.MergeMeta(overlay[n.ID].Meta, n.Meta)
			overlay[n.ID] = n
		}
	}

	values := make(map[string][]string)
	for id, n := range overlay {
		v := attrString(n.Meta[rule.AttributeKey])
		if v == "" {
			continue
		}
		values[v] = append(values[v], id)
	}
	if len(values) <= 1 {
		return nil
	}

	distinct := make([]string, 0, len(values))
	for v := range values {
		distinct = append(distinct, v)
	}
	sort.Strings(distinct)

	return &Conflict{
		Type: rule.ConflictType,
		Message: fmt.Sprintf("%d conflicting %s values for singleton type %q: %s",
			len(distinct), rule.AttributeKey, rule.NodeType, strings.Join(distinct, ", ")),
	}
}

func attrString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
