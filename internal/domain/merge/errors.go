package merge

import "errors"

var (
	// ErrModuleNotApproved is returned when a merge is requested for a module
	// that is not in the approved state.
	ErrModuleNotApproved = errors.New("module is not approved")

	// ErrModuleAlreadyMerged is returned when the module is already part of
	// the active snapshot.
	ErrModuleAlreadyMerged = errors.New("module already merged")

	// ErrModuleNotFound is returned when the referenced module does not exist.
	ErrModuleNotFound = errors.New("module not found")

	// ErrVersionNotFound is returned when the referenced snapshot version does
	// not exist for the project.
	ErrVersionNotFound = errors.New("snapshot version not found")

	// ErrNoPendingReviews is returned when a resubmit targets a module with no
	// pending review items.
	ErrNoPendingReviews = errors.New("no pending reviews for module")

	// ErrInvalidResolution is returned when a resubmit names an unknown
	// resolution action.
	ErrInvalidResolution = errors.New("invalid resolution action")

	// ErrInvalidInput is returned when a request is structurally invalid.
	ErrInvalidInput = errors.New("invalid input")
)
