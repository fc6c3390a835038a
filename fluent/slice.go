package fluent

import (
	"github.com/LerianStudio/lib-fluent/fluent/compare"
	"github.com/LerianStudio/lib-fluent/fluent/failure"
)

// SliceAssert checks the elements of a slice or array.
type SliceAssert struct {
	AbstractAssert[*SliceAssert, []any]
}

func newSliceAssert(actual []any) *SliceAssert {
	a := &SliceAssert{}
	a.init(a, actual)

	return a
}

// IsEmpty checks that the subject has no elements.
func (a *SliceAssert) IsEmpty() *SliceAssert {
	return a.check("IsEmpty", func() {
		if len(a.actual) != 0 {
			a.failf("expected empty but was %s", a.render(a.actual))
		}
	})
}

// IsNotEmpty checks that the subject has elements.
func (a *SliceAssert) IsNotEmpty() *SliceAssert {
	return a.check("IsNotEmpty", func() {
		if len(a.actual) == 0 {
			a.failf("expected a non-empty slice")
		}
	})
}

// HasSize checks the number of elements.
func (a *SliceAssert) HasSize(n int) *SliceAssert {
	return a.check("HasSize", func() {
		if len(a.actual) != n {
			a.failf("expected size %d but was %d in %s", n, len(a.actual), a.render(a.actual))
		}
	})
}

// Contains checks that every value is an element, in any order.
func (a *SliceAssert) Contains(values ...any) *SliceAssert {
	return a.check("Contains", func() {
		strategy := a.core.Info().Comparison()

		var missing []any

		for _, v := range values {
			if !compare.Contains(strategy, a.actual, v) {
				missing = append(missing, v)
			}
		}

		if len(missing) > 0 {
			a.failf("expected %s to contain %s but could not find %s", a.render(a.actual), a.render(values), a.render(missing))
		}
	})
}

// ContainsExactly checks the elements and their order.
func (a *SliceAssert) ContainsExactly(values ...any) *SliceAssert {
	return a.check("ContainsExactly", func() {
		strategy := a.core.Info().Comparison()

		equal := len(values) == len(a.actual)
		for i := 0; equal && i < len(values); i++ {
			equal = strategy.AreEqual(a.actual[i], values[i])
		}

		if !equal {
			a.failf("expected %s to contain exactly %s", a.render(a.actual), a.render(values))
		}
	})
}

// DoesNotContain checks that no value is an element.
func (a *SliceAssert) DoesNotContain(values ...any) *SliceAssert {
	return a.check("DoesNotContain", func() {
		strategy := a.core.Info().Comparison()

		for _, v := range values {
			if compare.Contains(strategy, a.actual, v) {
				a.failf("expected %s not to contain %s", a.render(a.actual), a.render(v))
			}
		}
	})
}

// AllMatch checks every element against pred.
func (a *SliceAssert) AllMatch(pred func(any) bool, desc string) *SliceAssert {
	return a.check("AllMatch", func() {
		requirePredicate("AllMatch", pred)

		for i, v := range a.actual {
			if !pred(v) {
				a.failf("expected all elements of %s to match %s but element %d (%s) did not", a.render(a.actual), predicateName(desc), i, a.render(v))
			}
		}
	})
}

// AnyMatch checks that at least one element satisfies pred.
func (a *SliceAssert) AnyMatch(pred func(any) bool, desc string) *SliceAssert {
	return a.check("AnyMatch", func() {
		requirePredicate("AnyMatch", pred)

		for _, v := range a.actual {
			if pred(v) {
				return
			}
		}

		a.failf("expected at least one element of %s to match %s", a.render(a.actual), predicateName(desc))
	})
}

// Size returns a wrapper over the number of elements. ReturnToSlice leads back.
func (a *SliceAssert) Size() *SliceSizeAssert {
	return navigate(a, "Size", func() *SliceSizeAssert {
		return newSliceSizeAssert(len(a.actual), a)
	})
}

// Element returns a wrapper over the element at index.
func (a *SliceAssert) Element(index int) *ObjectAssert {
	return navigate(a, "Element", func() *ObjectAssert {
		if index < 0 || index >= len(a.actual) {
			a.failf("expected an element at index %d but size was %d", index, len(a.actual))
		}

		return newObjectAssert(a.actual[index])
	})
}

// First returns a wrapper over the first element.
func (a *SliceAssert) First() *ObjectAssert {
	return navigate(a, "First", func() *ObjectAssert {
		if len(a.actual) == 0 {
			a.failf("expected a first element but the slice was empty")
		}

		return newObjectAssert(a.actual[0])
	})
}

// Last returns a wrapper over the last element.
func (a *SliceAssert) Last() *ObjectAssert {
	return navigate(a, "Last", func() *ObjectAssert {
		if len(a.actual) == 0 {
			a.failf("expected a last element but the slice was empty")
		}

		return newObjectAssert(a.actual[len(a.actual)-1])
	})
}

// FilteredOn returns a wrapper over the elements satisfying pred, in order.
func (a *SliceAssert) FilteredOn(pred func(any) bool) *SliceAssert {
	return navigate(a, "FilteredOn", func() *SliceAssert {
		requirePredicate("FilteredOn", pred)

		kept := make([]any, 0, len(a.actual))

		for _, v := range a.actual {
			if pred(v) {
				kept = append(kept, v)
			}
		}

		return newSliceAssert(kept)
	})
}

// ExtractingEach returns a wrapper over fn applied to every element.
func (a *SliceAssert) ExtractingEach(fn func(any) any) *SliceAssert {
	return navigate(a, "ExtractingEach", func() *SliceAssert {
		if fn == nil {
			failure.Raise(failure.Misconfigured("ExtractingEach", "extractor is nil"))
		}

		out := make([]any, len(a.actual))
		for i, v := range a.actual {
			out[i] = fn(v)
		}

		return newSliceAssert(out)
	})
}

// SliceSizeAssert checks the size of a slice and leads back to it.
type SliceSizeAssert struct {
	ComparableAssert[*SliceSizeAssert, int]
	parent *SliceAssert
}

func newSliceSizeAssert(size int, parent *SliceAssert) *SliceSizeAssert {
	a := &SliceSizeAssert{parent: parent}
	a.init(a, size)

	if parent != nil {
		a.core.SetParent(parent)
	}

	return a
}

// ReturnToSlice returns the wrapper Size was called on.
func (a *SliceSizeAssert) ReturnToSlice() *SliceAssert {
	return back(a, "ReturnToSlice", func() *SliceAssert {
		return a.parent
	})
}

func requirePredicate(op string, pred func(any) bool) {
	if pred == nil {
		failure.Raise(failure.Misconfigured(op, "predicate is nil"))
	}
}

func predicateName(desc string) string {
	if desc == "" {
		return "given predicate"
	}

	return desc
}
