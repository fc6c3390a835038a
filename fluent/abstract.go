package fluent

import (
	"fmt"

	"github.com/LerianStudio/lib-fluent/fluent/aggregate"
	"github.com/LerianStudio/lib-fluent/fluent/compare"
	"github.com/LerianStudio/lib-fluent/fluent/description"
	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/presentation"
	"github.com/LerianStudio/lib-fluent/fluent/proxy"
)

// AbstractAssert holds the subject and engine state shared by every wrapper.
// S is the concrete wrapper type embedding it and A the subject type.
// Chainable methods return S so that a chain keeps its concrete type.
type AbstractAssert[S proxy.Assert, A any] struct {
	core   proxy.Core
	actual A
	myself S
}

func (a *AbstractAssert[S, A]) init(myself S, actual A) {
	a.myself = myself
	a.actual = actual
}

// Core returns the engine state.
func (a *AbstractAssert[S, A]) Core() *proxy.Core {
	return &a.core
}

// Actual returns the subject.
func (a *AbstractAssert[S, A]) Actual() A {
	return a.actual
}

// Description returns the current description.
func (a *AbstractAssert[S, A]) Description() string {
	return a.core.Info().Description()
}

// As sets the description prefixed to the failures of later checks.
func (a *AbstractAssert[S, A]) As(format string, args ...any) S {
	a.core.Info().Describe(description.Text(format, args...))

	return a.myself
}

// DescribedAs is As taking a Description.
func (a *AbstractAssert[S, A]) DescribedAs(d description.Description) S {
	a.core.Info().Describe(d)

	return a.myself
}

// WithFailMessage replaces the message of later failures.
func (a *AbstractAssert[S, A]) WithFailMessage(format string, args ...any) S {
	a.core.Info().Override(format, args...)

	return a.myself
}

// OverridingErrorMessage is an alias of WithFailMessage.
func (a *AbstractAssert[S, A]) OverridingErrorMessage(format string, args ...any) S {
	return a.WithFailMessage(format, args...)
}

// WithFailMessageSupplier is WithFailMessage with a message built only on failure.
func (a *AbstractAssert[S, A]) WithFailMessageSupplier(supplier func() string) S {
	a.core.Info().OverrideWith(supplier)

	return a.myself
}

// WithRepresentation sets how values are rendered in failures.
func (a *AbstractAssert[S, A]) WithRepresentation(r presentation.Representation) S {
	a.core.Info().SetRepresentation(r)

	return a.myself
}

// InHexadecimal renders numbers, strings and bytes in base 16.
func (a *AbstractAssert[S, A]) InHexadecimal() S {
	return a.WithRepresentation(presentation.Hexadecimal)
}

// InBinary renders numbers, strings and bytes in base 2.
func (a *AbstractAssert[S, A]) InBinary() S {
	return a.WithRepresentation(presentation.Binary)
}

// UsingComparator compares subjects with fn, which follows the cmp.Compare
// contract. Values of other types, as met after a navigation, fall back to
// the standard comparison.
func (a *AbstractAssert[S, A]) UsingComparator(name string, fn func(x, y A) int) S {
	if fn == nil {
		failure.Raise(failure.Misconfigured("UsingComparator", "comparator %q is nil", name))
	}

	a.core.Info().SetComparison(compare.Comparator(name, typedComparator(fn)))

	return a.myself
}

// UsingDefaultComparator restores the standard comparison.
func (a *AbstractAssert[S, A]) UsingDefaultComparator() S {
	a.core.Info().SetComparison(compare.Standard)

	return a.myself
}

// IsEqualTo checks that the subject equals expected.
func (a *AbstractAssert[S, A]) IsEqualTo(expected A) S {
	return a.check("IsEqualTo", func() {
		if !a.core.Info().Comparison().AreEqual(a.actual, expected) {
			failure.Raise(shouldBeEqual(a.core.Info(), a.actual, expected))
		}
	})
}

// IsNotEqualTo checks that the subject differs from other.
func (a *AbstractAssert[S, A]) IsNotEqualTo(other A) S {
	return a.check("IsNotEqualTo", func() {
		if a.core.Info().Comparison().AreEqual(a.actual, other) {
			a.failf("expected %s not to be equal to %s", a.render(a.actual), a.render(other))
		}
	})
}

// IsIn checks that the subject is one of values.
func (a *AbstractAssert[S, A]) IsIn(values ...A) S {
	return a.check("IsIn", func() {
		if !compare.Contains(a.core.Info().Comparison(), toAny(values), a.actual) {
			a.failf("expected %s to be in %s", a.render(a.actual), a.render(values))
		}
	})
}

// IsNotIn checks that the subject is none of values.
func (a *AbstractAssert[S, A]) IsNotIn(values ...A) S {
	return a.check("IsNotIn", func() {
		if compare.Contains(a.core.Info().Comparison(), toAny(values), a.actual) {
			a.failf("expected %s not to be in %s", a.render(a.actual), a.render(values))
		}
	})
}

// Matches checks the subject against pred. desc names the predicate in the
// failure message.
func (a *AbstractAssert[S, A]) Matches(pred func(A) bool, desc string) S {
	return a.check("Matches", func() {
		if pred == nil {
			failure.Raise(failure.Misconfigured("Matches", "predicate is nil"))
		}

		if desc == "" {
			desc = "given predicate"
		}

		if !pred(a.actual) {
			a.failf("expected %s to match %s", a.render(a.actual), desc)
		}
	})
}

// Satisfies runs every check against the subject and fails with one error
// listing each failed check. The overriding message is not applied.
func (a *AbstractAssert[S, A]) Satisfies(checks ...func(A)) S {
	return a.check("Satisfies", func() {
		a.aggregate(aggregate.AllOf, checks)
	})
}

// SatisfiesAnyOf passes as soon as one check passes. When none does it fails
// with one error listing each failed check.
func (a *AbstractAssert[S, A]) SatisfiesAnyOf(checks ...func(A)) S {
	return a.check("SatisfiesAnyOf", func() {
		a.aggregate(aggregate.AnyOf, checks)
	})
}

// Extracting returns a wrapper over fn applied to the subject.
func (a *AbstractAssert[S, A]) Extracting(fn func(A) any) *ObjectAssert {
	return navigate(a.myself, "Extracting", func() *ObjectAssert {
		if fn == nil {
			failure.Raise(failure.Misconfigured("Extracting", "extractor is nil"))
		}

		return newObjectAssert(fn(a.actual))
	})
}

func (a *AbstractAssert[S, A]) aggregate(q aggregate.Quantifier, checks []func(A)) {
	inf := a.core.Info()

	err := aggregate.Run(q, a.actual, checks, aggregate.Options{
		Description: inf.Description(),
		Subject:     inf.Render(a.actual),
	})
	if err != nil {
		failure.Raise(err)
	}
}

// check runs fn as the body of method. Unbound wrappers run it directly.
func (a *AbstractAssert[S, A]) check(method string, fn func()) S {
	in := a.core.Interceptor()
	if in == nil {
		fn()

		return a.myself
	}

	out, _ := in.Invoke(a.myself, method, func() proxy.Assert {
		fn()

		return a.myself
	}).(S)

	return out
}

func (a *AbstractAssert[S, A]) failf(format string, args ...any) {
	failure.Raise(a.core.Info().Fail(fmt.Sprintf(format, args...)))
}

func (a *AbstractAssert[S, A]) render(v any) string {
	return a.core.Info().Render(v)
}

// navigate runs body as the navigation method of self. The returned wrapper
// carries self's display state and policy.
func navigate[R proxy.Assert](self proxy.Assert, method string, body func() R) R {
	in := self.Core().Interceptor()
	if in == nil {
		r := body()
		proxy.Transplant(r, self)

		return r
	}

	r, _ := in.Navigate(self, method, func() proxy.Assert { return body() }).(R)

	return r
}

// back is navigate for methods returning an existing wrapper, whose display
// state is left as it is.
func back[R proxy.Assert](self proxy.Assert, method string, body func() R) R {
	in := self.Core().Interceptor()
	if in == nil {
		return body()
	}

	r, _ := in.Navigate(self, method, func() proxy.Assert { return body() }).(R)

	return r
}

func typedComparator[A any](fn func(x, y A) int) func(x, y any) int {
	return func(x, y any) int {
		tx, okx := x.(A)
		ty, oky := y.(A)

		if okx && oky {
			return fn(tx, ty)
		}

		if compare.Standard.AreEqual(x, y) {
			return 0
		}

		if c, err := compare.Standard.Compare(x, y); err == nil {
			return c
		}

		return 1
	}
}

func toAny[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}
