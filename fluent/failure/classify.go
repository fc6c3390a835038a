package failure

import (
	"errors"
	"fmt"
)

// Outcome is the classification of a completed check.
type Outcome int

const (
	// Success means the check returned normally.
	Success Outcome = iota
	// Failure means the check raised an assertion failure.
	Failure
	// Fault means the check raised anything else: a skip signal, a
	// configuration error or an unexpected panic.
	Fault
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Fault:
		return "fault"
	default:
		return "unknown"
	}
}

// Classify maps a recovered panic value to an Outcome. The returned error is
// the failure itself for Failure, and a best-effort error view of the value
// for Fault.
func Classify(recovered any) (Outcome, error) {
	if recovered == nil {
		return Success, nil
	}

	err, ok := recovered.(error)
	if !ok {
		return Fault, fmt.Errorf("panic: %v", recovered)
	}

	var (
		assumption *AssumptionError
		config     *ConfigurationError
	)

	switch {
	case errors.As(err, &assumption), errors.As(err, &config):
		return Fault, err
	case errors.Is(err, ErrAssertionFailed):
		return Failure, err
	default:
		return Fault, err
	}
}

// Capture runs fn and classifies how it ended. recovered is the raw panic
// value, to be re-raised unchanged when the outcome is Fault.
func Capture(fn func()) (outcome Outcome, recovered any, err error) {
	defer func() {
		if r := recover(); r != nil {
			recovered = r
			outcome, err = Classify(r)
		}
	}()

	fn()

	return Success, nil, nil
}

// Raise panics with err.
func Raise(err error) {
	panic(err)
}

// Fail raises an AssertionError with a formatted message.
func Fail(format string, args ...any) {
	Raise(New(format, args...))
}

// IsAssertionFailure reports whether err is an assertion failure and not a
// skip signal.
func IsAssertionFailure(err error) bool {
	var assumption *AssumptionError

	return err != nil && !errors.As(err, &assumption) && errors.Is(err, ErrAssertionFailed)
}
