package module

import "errors"

var (
	// ErrModuleNotFound indicates the module doesn't exist.
	ErrModuleNotFound = errors.New("module not found")
	// ErrInvalidTransition indicates an invalid workflow transition.
	ErrInvalidTransition = errors.New("invalid module status transition")
	// ErrInvalidInput indicates invalid input for module operations.
	ErrInvalidInput = errors.New("invalid module input")
	// ErrNotApproved indicates the module is not in the approved state.
	ErrNotApproved = errors.New("module not approved")
)
