package fluent

import (
	"reflect"
	"sort"

	"github.com/LerianStudio/lib-fluent/fluent/presentation"
)

// MapAssert checks the entries of a map.
type MapAssert struct {
	AbstractAssert[*MapAssert, map[any]any]
}

func newMapAssert(actual map[any]any) *MapAssert {
	a := &MapAssert{}
	a.init(a, actual)

	return a
}

// IsEmpty checks that the subject has no entries.
func (a *MapAssert) IsEmpty() *MapAssert {
	return a.check("IsEmpty", func() {
		if len(a.actual) != 0 {
			a.failf("expected empty but was %s", a.render(a.actual))
		}
	})
}

// IsNotEmpty checks that the subject has entries.
func (a *MapAssert) IsNotEmpty() *MapAssert {
	return a.check("IsNotEmpty", func() {
		if len(a.actual) == 0 {
			a.failf("expected a non-empty map")
		}
	})
}

// HasSize checks the number of entries.
func (a *MapAssert) HasSize(n int) *MapAssert {
	return a.check("HasSize", func() {
		if len(a.actual) != n {
			a.failf("expected size %d but was %d in %s", n, len(a.actual), a.render(a.actual))
		}
	})
}

// ContainsKey checks that key is present.
func (a *MapAssert) ContainsKey(key any) *MapAssert {
	return a.check("ContainsKey", func() {
		if _, ok := a.lookup(key); !ok {
			a.failf("expected %s to contain key %s", a.render(a.actual), a.render(key))
		}
	})
}

// DoesNotContainKey checks that key is absent.
func (a *MapAssert) DoesNotContainKey(key any) *MapAssert {
	return a.check("DoesNotContainKey", func() {
		if _, ok := a.lookup(key); ok {
			a.failf("expected %s not to contain key %s", a.render(a.actual), a.render(key))
		}
	})
}

// ContainsEntry checks that key maps to value.
func (a *MapAssert) ContainsEntry(key, value any) *MapAssert {
	return a.check("ContainsEntry", func() {
		got, ok := a.lookup(key)
		if !ok || !a.core.Info().Comparison().AreEqual(got, value) {
			a.failf("expected %s to contain entry %s: %s", a.render(a.actual), a.render(key), a.render(value))
		}
	})
}

// Size returns a wrapper over the number of entries. ReturnToMap leads back.
func (a *MapAssert) Size() *MapSizeAssert {
	return navigate(a, "Size", func() *MapSizeAssert {
		return newMapSizeAssert(len(a.actual), a)
	})
}

// ExtractingByKey returns a wrapper over the value stored under key.
func (a *MapAssert) ExtractingByKey(key any) *ObjectAssert {
	return navigate(a, "ExtractingByKey", func() *ObjectAssert {
		v, ok := a.lookup(key)
		if !ok {
			a.failf("expected %s to contain key %s", a.render(a.actual), a.render(key))
		}

		return newObjectAssert(v)
	})
}

// Keys returns a wrapper over the keys, ordered by their standard rendering.
func (a *MapAssert) Keys() *SliceAssert {
	return navigate(a, "Keys", func() *SliceAssert {
		return newSliceAssert(sortedKeys(a.actual))
	})
}

// Values returns a wrapper over the values, in the order of Keys.
func (a *MapAssert) Values() *SliceAssert {
	return navigate(a, "Values", func() *SliceAssert {
		keys := sortedKeys(a.actual)

		values := make([]any, len(keys))
		for i, k := range keys {
			values[i] = a.actual[k]
		}

		return newSliceAssert(values)
	})
}

func (a *MapAssert) lookup(key any) (any, bool) {
	if key == nil || reflect.TypeOf(key).Comparable() {
		if v, ok := a.actual[key]; ok {
			return v, true
		}
	}

	strategy := a.core.Info().Comparison()

	for k, v := range a.actual {
		if strategy.AreEqual(k, key) {
			return v, true
		}
	}

	return nil, false
}

func sortedKeys(m map[any]any) []any {
	keys := make([]any, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return presentation.Render(presentation.Standard, keys[i]) < presentation.Render(presentation.Standard, keys[j])
	})

	return keys
}

// MapSizeAssert checks the size of a map and leads back to it.
type MapSizeAssert struct {
	ComparableAssert[*MapSizeAssert, int]
	parent *MapAssert
}

func newMapSizeAssert(size int, parent *MapAssert) *MapSizeAssert {
	a := &MapSizeAssert{parent: parent}
	a.init(a, size)

	if parent != nil {
		a.core.SetParent(parent)
	}

	return a
}

// ReturnToMap returns the wrapper Size was called on.
func (a *MapSizeAssert) ReturnToMap() *MapAssert {
	return back(a, "ReturnToMap", func() *MapAssert {
		return a.parent
	})
}
