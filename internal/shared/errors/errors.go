package errors

import "errors"

// Domain errors
var (
	// Analysis errors
	ErrEmptyDomain   = errors.New("domain cannot be empty")
	ErrInvalidDomain = errors.New("invalid domain")
	ErrNoResolver    = errors.New("no resolver configured")

	// Checker errors
	ErrEmptyTarget      = errors.New("target cannot be empty")
	ErrUnsupportedCheck = errors.New("unsupported check")

	// Validation errors
	ErrValidation   = errors.New("validation error")
	ErrInvalidInput = errors.New("invalid input")
)
