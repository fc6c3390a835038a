// Package info holds the display state of an assertion wrapper: its
// description, overriding failure message, comparison strategy and value
// representation.
//
// State set on a wrapper before a failing check is used to build that
// check's failure. When a check returns a new wrapper the state is copied
// onto it.
package info

import (
	"fmt"

	"github.com/LerianStudio/lib-fluent/fluent/compare"
	"github.com/LerianStudio/lib-fluent/fluent/description"
	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/presentation"
)

// Info is the mutable display state of one wrapper. It is not safe for
// concurrent use; a wrapper chain runs on a single goroutine.
type Info struct {
	description    description.Description
	overriding     func() string
	representation presentation.Representation
	comparison     compare.Strategy
}

// New returns the default state: no description, no override, standard
// representation and comparison.
func New() *Info {
	return &Info{
		description:    description.Empty(),
		representation: presentation.Standard,
		comparison:     compare.Standard,
	}
}

// Description returns the description text.
func (i *Info) Description() string {
	return description.ValueOf(i.description)
}

// Describe replaces the description.
func (i *Info) Describe(d description.Description) {
	if d == nil {
		d = description.Empty()
	}

	i.description = d
}

// Override replaces every subsequent failure message with the formatted text.
// Formatting is deferred until a check fails.
func (i *Info) Override(format string, args ...any) {
	if format == "" {
		i.overriding = nil
		return
	}

	i.overriding = func() string {
		if len(args) == 0 {
			return format
		}

		return fmt.Sprintf(format, args...)
	}
}

// OverrideWith replaces failure messages with the result of supplier.
func (i *Info) OverrideWith(supplier func() string) {
	i.overriding = supplier
}

// Overriding returns the overriding message, or "" when none is set.
func (i *Info) Overriding() string {
	if i.overriding == nil {
		return ""
	}

	return i.overriding()
}

// Representation returns the value representation.
func (i *Info) Representation() presentation.Representation {
	return i.representation
}

// SetRepresentation replaces the representation; nil restores the standard one.
func (i *Info) SetRepresentation(r presentation.Representation) {
	if r == nil {
		r = presentation.Standard
	}

	i.representation = r
}

// Comparison returns the comparison strategy.
func (i *Info) Comparison() compare.Strategy {
	return i.comparison
}

// SetComparison replaces the strategy; nil restores the standard one.
func (i *Info) SetComparison(s compare.Strategy) {
	if s == nil {
		s = compare.Standard
	}

	i.comparison = s
}

// Render renders v with the current representation.
func (i *Info) Render(v any) string {
	return presentation.Render(i.representation, v)
}

// CopyFrom overwrites i with the state of other.
func (i *Info) CopyFrom(other *Info) {
	if other == nil || other == i {
		return
	}

	*i = *other
}

// Clone returns an independent copy.
func (i *Info) Clone() *Info {
	clone := *i

	return &clone
}

// Fail builds the failure of a check from message, honouring the
// description and the overriding message.
func (i *Info) Fail(message string) *failure.AssertionError {
	return i.FailWithValues(message, nil, nil, false)
}

// FailWithValues is Fail carrying the compared values.
func (i *Info) FailWithValues(message string, actual, expected any, hasValues bool) *failure.AssertionError {
	if override := i.Overriding(); override != "" {
		message = override
	}

	return &failure.AssertionError{
		Description: i.Description(),
		Message:     message,
		Actual:      actual,
		Expected:    expected,
		HasValues:   hasValues,
	}
}
