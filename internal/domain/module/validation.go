package module

import "strings"

// ValidateProposeInput validates fields required to propose a module.
func ValidateProposeInput(req ProposeRequest) error {
	if strings.TrimSpace(req.ProjectID) == "" {
		return ErrInvalidInput
	}
	if req.Order < 0 {
		return ErrInvalidInput
	}
	if len(req.Nodes) == 0 {
		return ErrInvalidInput
	}
	if !validConfidence(req.Confidence) {
		return ErrInvalidInput
	}
	seen := make(map[string]bool, len(req.Nodes))
	for _, n := range req.Nodes {
		if strings.TrimSpace(n.ID) == "" || strings.TrimSpace(n.Type) == "" {
			return ErrInvalidInput
		}
		if seen[n.ID] {
			return ErrInvalidInput
		}
		seen[n.ID] = true
	}
	for _, e := range req.Edges {
		if strings.TrimSpace(e.From) == "" || strings.TrimSpace(e.To) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

// ValidateTransition validates a requested status transition. Proposed
// modules may be approved or rejected; approved modules may be sent back for
// modification; modified modules may be re-approved.
func ValidateTransition(from, to Status) error {
	valid := false
	switch from {
	case StatusProposed:
		if to == StatusApproved || to == StatusRejected {
			valid = true
		}
	case StatusApproved:
		if to == StatusModified {
			valid = true
		}
	case StatusModified:
		if to == StatusApproved || to == StatusRejected {
			valid = true
		}
	}
	if !valid {
		return ErrInvalidTransition
	}
	return nil
}

func validConfidence(c Confidence) bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}
