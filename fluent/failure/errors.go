package failure

import (
	"errors"
	"fmt"
)

var (
	// ErrAssertionFailed is the sentinel every assertion failure unwraps to.
	ErrAssertionFailed = errors.New("assertion failed")

	// ErrAssumptionNotMet is the sentinel every skip signal unwraps to.
	ErrAssumptionNotMet = errors.New("assumption not met")

	// ErrConfiguration is the sentinel every configuration error unwraps to.
	ErrConfiguration = errors.New("invalid fluent configuration")
)

// AssertionError is a single failed check.
type AssertionError struct {
	// Description is the user supplied description, rendered as a "[...]" prefix.
	Description string
	Message     string
	Actual      any
	Expected    any
	// HasValues is set when Actual and Expected carry the compared values.
	HasValues bool
	// Location is the file:line of the caller that ran the check, when recorded.
	Location string
}

// New returns an AssertionError with a formatted message.
func New(format string, args ...any) *AssertionError {
	return &AssertionError{Message: fmt.Sprintf(format, args...)}
}

// Error returns "[description] message", followed by the location line when known.
func (e *AssertionError) Error() string {
	if e == nil {
		return ErrAssertionFailed.Error()
	}

	msg := e.Message
	if e.Description != "" {
		msg = "[" + e.Description + "] " + msg
	}

	if e.Location != "" {
		msg += "\nat " + e.Location
	}

	return msg
}

// Unwrap returns ErrAssertionFailed.
func (e *AssertionError) Unwrap() error {
	return ErrAssertionFailed
}

// At returns a copy of e decorated with location.
func (e *AssertionError) At(location string) *AssertionError {
	if e == nil {
		return nil
	}

	decorated := *e
	decorated.Location = location

	return &decorated
}

// AssumptionError signals that a precondition of the running test does not
// hold. A runner that understands it reports the test as skipped.
type AssumptionError struct {
	// Target is the name of the skip target that produced the signal.
	Target  string
	Message string
	// Cause is the assertion failure the signal was converted from.
	Cause error
}

// Error returns the message of the converted failure.
func (e *AssumptionError) Error() string {
	if e == nil {
		return ErrAssumptionNotMet.Error()
	}

	return e.Message
}

// Unwrap returns ErrAssumptionNotMet. Cause is not exposed here
// so a skip signal never matches ErrAssertionFailed.
func (e *AssumptionError) Unwrap() error {
	return ErrAssumptionNotMet
}

// ConfigurationError reports misuse of the library: an unmapped wrapper
// type, an empty closure set, an unknown skip target and similar. It is
// raised at the point of misuse and never collected.
type ConfigurationError struct {
	Op     string
	Reason string
	Err    error
}

// Misconfigured returns a ConfigurationError for op.
func Misconfigured(op, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// Error returns a message naming the operation and the reason.
func (e *ConfigurationError) Error() string {
	if e == nil {
		return ErrConfiguration.Error()
	}

	msg := ErrConfiguration.Error()
	if e.Op != "" {
		msg += " in " + e.Op
	}

	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap exposes both ErrConfiguration and the underlying error.
func (e *ConfigurationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfiguration}
	}

	return []error{ErrConfiguration, e.Err}
}
