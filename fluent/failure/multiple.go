package failure

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// MultipleFailuresError carries several assertion failures reported as one.
// It unwraps to ErrAssertionFailed, so a combined failure is itself an
// assertion failure and can be collected by an enclosing soft container.
type MultipleFailuresError struct {
	merr *multierror.Error
}

// Combine builds the failure raised by an aggregated check. The message
// starts with "[description] N assertion error(s) for: subject" and lists
// every failure in order. description and subject may be empty.
func Combine(description, subject string, errs []error) *MultipleFailuresError {
	merr := &multierror.Error{Errors: errs}
	merr.ErrorFormat = groupFormat(description, subject)

	return &MultipleFailuresError{merr: merr}
}

// Collected builds the failure reported by a soft container.
func Collected(errs []error) *MultipleFailuresError {
	merr := &multierror.Error{Errors: errs}
	merr.ErrorFormat = softFormat

	return &MultipleFailuresError{merr: merr}
}

// Error renders every failure.
func (e *MultipleFailuresError) Error() string {
	if e == nil || e.merr == nil {
		return ErrAssertionFailed.Error()
	}

	return e.merr.Error()
}

// Errors returns the individual failures in order.
func (e *MultipleFailuresError) Errors() []error {
	if e == nil || e.merr == nil {
		return nil
	}

	return e.merr.WrappedErrors()
}

// Len returns the number of failures.
func (e *MultipleFailuresError) Len() int {
	return len(e.Errors())
}

// Unwrap returns ErrAssertionFailed.
func (e *MultipleFailuresError) Unwrap() error {
	return ErrAssertionFailed
}

func groupFormat(description, subject string) multierror.ErrorFormatFunc {
	return func(errs []error) string {
		var sb strings.Builder

		if description != "" {
			sb.WriteString("[" + description + "] ")
		}

		sb.WriteString(plural(len(errs), "assertion error", "assertion errors"))

		if subject != "" {
			sb.WriteString(" for: " + subject)
		}

		for i, err := range errs {
			fmt.Fprintf(&sb, "\n\n-- error %d --\n%s", i+1, err)
		}

		return sb.String()
	}
}

func softFormat(errs []error) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "multiple failures (%s)", plural(len(errs), "failure", "failures"))

	for i, err := range errs {
		fmt.Fprintf(&sb, "\n-- failure %d --\n%s", i+1, err)
	}

	return sb.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}

	return fmt.Sprintf("%d %s", n, many)
}
