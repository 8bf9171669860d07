package cli

import "errors"

var (
	// ErrUsage is returned when the command line cannot be turned into calls.
	ErrUsage = errors.New("usage error")
	// ErrFailedCalls is returned when at least one response is error-shaped.
	ErrFailedCalls = errors.New("some calls failed")
	// ErrOutput is returned when results cannot be written.
	ErrOutput = errors.New("write output")
)
