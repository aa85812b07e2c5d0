package audit

import "errors"

// ErrInvalidInput indicates invalid input for audit operations.
var ErrInvalidInput = errors.New("invalid audit input")
