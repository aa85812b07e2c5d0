package audit

import "context"

// Repository provides append-only audit log persistence.
type Repository interface {
	Append(ctx context.Context, tenantID string, entry *Entry) error
	List(ctx context.Context, tenantID string, opts ListOptions) ([]Entry, error)
}
