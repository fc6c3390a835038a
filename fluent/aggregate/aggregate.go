// Package aggregate runs several checks against one subject and combines
// their failures.
//
// All requires every check to pass and reports every failure; Any requires
// one check to pass and stops at the first that does. Only assertion
// failures are captured. Anything else a check raises propagates at once.
package aggregate

import (
	"github.com/LerianStudio/lib-fluent/fluent/failure"
)

// Quantifier selects how many checks must pass.
type Quantifier int

const (
	// AllOf requires every check to pass.
	AllOf Quantifier = iota
	// AnyOf requires at least one check to pass.
	AnyOf
)

// String returns the quantifier name.
func (q Quantifier) String() string {
	switch q {
	case AllOf:
		return "all"
	case AnyOf:
		return "any"
	default:
		return "unknown"
	}
}

// Options shape the combined failure.
type Options struct {
	// Description prefixes the combined message as "[description]".
	Description string
	// Subject is the rendered subject shown after "for:".
	Subject string
}

// All runs every check against subject in order and returns nil when all
// passed, or one *failure.MultipleFailuresError listing each failure.
func All[T any](subject T, checks ...func(T)) error {
	return Run(AllOf, subject, checks, Options{})
}

// Any runs checks in order until one passes and returns nil, or returns one
// *failure.MultipleFailuresError listing every failure when none passed.
func Any[T any](subject T, checks ...func(T)) error {
	return Run(AnyOf, subject, checks, Options{})
}

// Run applies q to checks. An empty check set or a nil check panics with a
// *failure.ConfigurationError.
func Run[T any](q Quantifier, subject T, checks []func(T), opts Options) error {
	if err := validate(q, checks); err != nil {
		failure.Raise(err)
	}

	var failures []error

	for _, check := range checks {
		outcome, recovered, err := failure.Capture(func() { check(subject) })

		switch outcome {
		case failure.Success:
			if q == AnyOf {
				return nil
			}
		case failure.Failure:
			failures = append(failures, err)
		default:
			panic(recovered)
		}
	}

	if len(failures) == 0 {
		return nil
	}

	return failure.Combine(opts.Description, opts.Subject, failures)
}

func validate[T any](q Quantifier, checks []func(T)) error {
	op := "aggregate." + q.String()

	if q != AllOf && q != AnyOf {
		return failure.Misconfigured(op, "unknown quantifier %d", int(q))
	}

	if len(checks) == 0 {
		return failure.Misconfigured(op, "no checks given")
	}

	for i, check := range checks {
		if check == nil {
			return failure.Misconfigured(op, "check %d is nil", i)
		}
	}

	return nil
}
