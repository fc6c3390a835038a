package fluent

import (
	"errors"
	"strings"

	"github.com/LerianStudio/lib-fluent/fluent/internal/nilcheck"
)

// ErrorAssert checks an error and its wrap chain.
type ErrorAssert struct {
	AbstractAssert[*ErrorAssert, error]
}

func newErrorAssert(actual error) *ErrorAssert {
	a := &ErrorAssert{}
	a.init(a, actual)

	return a
}

// IsNil checks that there is no error.
func (a *ErrorAssert) IsNil() *ErrorAssert {
	return a.check("IsNil", func() {
		if !nilcheck.Interface(a.actual) {
			a.failf("expected no error but got %s", a.render(a.actual))
		}
	})
}

// IsNotNil checks that there is an error.
func (a *ErrorAssert) IsNotNil() *ErrorAssert {
	return a.check("IsNotNil", func() {
		if nilcheck.Interface(a.actual) {
			a.failf("expected an error but was nil")
		}
	})
}

// HasMessage checks the full error text.
func (a *ErrorAssert) HasMessage(message string) *ErrorAssert {
	return a.check("HasMessage", func() {
		a.requireError()

		if got := a.actual.Error(); got != message {
			a.failf("expected error message %q but was %q", message, got)
		}
	})
}

// HasMessageContaining checks that the error text contains fragment.
func (a *ErrorAssert) HasMessageContaining(fragment string) *ErrorAssert {
	return a.check("HasMessageContaining", func() {
		a.requireError()

		if got := a.actual.Error(); !strings.Contains(got, fragment) {
			a.failf("expected error message %q to contain %q", got, fragment)
		}
	})
}

// Wraps checks errors.Is(subject, target).
func (a *ErrorAssert) Wraps(target error) *ErrorAssert {
	return a.check("Wraps", func() {
		if !errors.Is(a.actual, target) {
			a.failf("expected %s to wrap %s", a.render(a.actual), a.render(target))
		}
	})
}

// Message returns a wrapper over the error text.
func (a *ErrorAssert) Message() *StringAssert {
	return navigate(a, "Message", func() *StringAssert {
		a.requireError()

		return newStringAssert(a.actual.Error())
	})
}

// Cause returns a wrapper over the directly wrapped error.
func (a *ErrorAssert) Cause() *ErrorAssert {
	return navigate(a, "Cause", func() *ErrorAssert {
		a.requireError()

		cause := unwrapOnce(a.actual)
		if cause == nil {
			a.failf("expected %s to have a cause", a.render(a.actual))
		}

		return newErrorAssert(cause)
	})
}

// RootCause returns a wrapper over the innermost wrapped error.
func (a *ErrorAssert) RootCause() *ErrorAssert {
	return navigate(a, "RootCause", func() *ErrorAssert {
		a.requireError()

		root := unwrapOnce(a.actual)
		if root == nil {
			a.failf("expected %s to have a cause", a.render(a.actual))
		}

		for next := unwrapOnce(root); next != nil; next = unwrapOnce(next) {
			root = next
		}

		return newErrorAssert(root)
	})
}

func (a *ErrorAssert) requireError() {
	if nilcheck.Interface(a.actual) {
		a.failf("expected an error but was nil")
	}
}

// unwrapOnce follows Unwrap() error, or the first error of Unwrap() []error.
func unwrapOnce(err error) error {
	if next := errors.Unwrap(err); next != nil {
		return next
	}

	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range multi.Unwrap() {
			if e != nil {
				return e
			}
		}
	}

	return nil
}
