package module

// ListModulesOptions provides filtering options for listing modules.
type ListModulesOptions struct {
	ProjectID string
	Statuses  []Status
	Limit     int
	Offset    int
}
