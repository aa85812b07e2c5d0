package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service handles audit log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new audit service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Append records an audit entry with the current timestamp if missing.
func (s *Service) Append(ctx context.Context, tenantID string, entry *Entry) error {
	if entry == nil {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Append(ctx, tenantID, entry); err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}
	return nil
}

// GetRecent lists audit entries with filtering, newest first.
func (s *Service) GetRecent(ctx context.Context, tenantID string, opts ListOptions) ([]Entry, error) {
	return s.repo.List(ctx, tenantID, opts)
}
