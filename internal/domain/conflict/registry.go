package conflict

// Rule declares a singleton-by-type constraint: across the canonical graph
// and an incoming module, nodes of NodeType must agree on the identifying
// attribute stored under AttributeKey in their meta bag. Two distinct values
// (e.g. two database engines) raise a conflict of ConflictType.
type Rule struct {
	NodeType     string `json:"node_type"`
	AttributeKey string `json:"attribute_key"`
	ConflictType Type   `json:"conflict_type"`
}

// DefaultRules returns the built-in singleton registry. Callers may extend
// or replace it when constructing a Detector.
func DefaultRules() []Rule {
	return []Rule{
		{NodeType: "database", AttributeKey: "engine", ConflictType: TypeDatabasePlurality},
		{NodeType: "gateway", AttributeKey: "provider", ConflictType: TypeGatewayPlurality},
	}
}
