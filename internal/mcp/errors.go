package mcp

import (
	"errors"
	"fmt"

	"github.com/stackdraft/canon/internal/domain/merge"
	"github.com/stackdraft/canon/internal/domain/module"
	"github.com/stackdraft/canon/internal/domain/project"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check project ID or call list_projects"}
	case errors.Is(err, module.ErrModuleNotFound), errors.Is(err, merge.ErrModuleNotFound):
		return &APIError{Code: "MODULE_NOT_FOUND", Message: "module not found", RecoveryHint: "Check module ID or call list_modules"}
	case errors.Is(err, module.ErrInvalidTransition):
		return &APIError{Code: "INVALID_TRANSITION", Message: "invalid status transition", RecoveryHint: "Check the module's current status"}
	case errors.Is(err, merge.ErrModuleNotApproved):
		return &APIError{Code: "MODULE_NOT_APPROVED", Message: "module is not approved", RecoveryHint: "Approve the module before merging"}
	case errors.Is(err, merge.ErrModuleAlreadyMerged):
		return &APIError{Code: "MODULE_ALREADY_MERGED", Message: "module already merged", RecoveryHint: "The module is part of the active snapshot"}
	case errors.Is(err, merge.ErrVersionNotFound):
		return &APIError{Code: "VERSION_NOT_FOUND", Message: "snapshot version not found", RecoveryHint: "Call list_history for valid versions"}
	case errors.Is(err, merge.ErrNoPendingReviews):
		return &APIError{Code: "NO_PENDING_REVIEWS", Message: "no pending reviews for module", RecoveryHint: "Use submit_module for unconflicted modules"}
	case errors.Is(err, merge.ErrInvalidResolution):
		return &APIError{Code: "INVALID_RESOLUTION", Message: "invalid resolution action", RecoveryHint: "Use apply_incoming, keep_canonical, merge_meta, or rename_and_keep_both"}
	default:
		return nil
	}
}
