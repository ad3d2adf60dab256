package triage

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNoProtocolsLoaded indicates the engine has nothing to evaluate.
	ErrNoProtocolsLoaded = errors.New("no protocols loaded")

	// ErrInvalidConfig indicates invalid engine configuration.
	ErrInvalidConfig = errors.New("invalid engine configuration")

	// ErrWatchRunning indicates Watch was called while already watching.
	ErrWatchRunning = errors.New("watch already started")
)

// EvaluationError reports an evaluation that could not finish, typically
// because its context ended.
type EvaluationError struct {
	Protocol string
	Rule     string
	Cause    error
}

// Error returns the error message.
func (e *EvaluationError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("protocol %s rule %s: evaluation aborted: %v", e.Protocol, e.Rule, e.Cause)
	}
	return fmt.Sprintf("protocol %s: evaluation aborted: %v", e.Protocol, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

// ValidationError indicates a protocol set the engine refused to load.
type ValidationError struct {
	// Protocol is the offending protocol, or "global" for set-wide
	// problems.
	Protocol string
	Cause    error
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("protocol %s: %v", e.Protocol, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// ReloadError indicates the source could not be loaded.
type ReloadError struct {
	Cause error
}

// Error returns the error message.
func (e *ReloadError) Error() string {
	return fmt.Sprintf("protocol reload failed: %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ReloadError) Unwrap() error {
	return e.Cause
}
