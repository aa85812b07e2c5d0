package project

import "time"

// Project is the container for modules and canonical snapshots
type Project struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectSummary is a lightweight representation for listing
type ProjectSummary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	ModuleCount    int       `json:"module_count"`
	PendingReviews int       `json:"pending_reviews"`
	ActiveVersion  int       `json:"active_version"`
	CreatedAt      time.Time `json:"created_at"`
}
