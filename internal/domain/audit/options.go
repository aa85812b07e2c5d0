package audit

// ListOptions provides filtering options for listing audit entries.
type ListOptions struct {
	ProjectID string
	ModuleID  *string
	Action    *Action
	Limit     int
	Offset    int
}
