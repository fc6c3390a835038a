package proxy

import (
	"reflect"
	"sort"
)

// notIntercepted lists the methods that never go through a policy: identity,
// display-state setters and getters, and comparison configuration.
var notIntercepted = map[string]struct{}{
	"Core":                     {},
	"Actual":                   {},
	"As":                       {},
	"DescribedAs":              {},
	"Description":              {},
	"WithFailMessage":          {},
	"WithFailMessageSupplier":  {},
	"OverridingErrorMessage":   {},
	"WithRepresentation":       {},
	"InHexadecimal":            {},
	"InBinary":                 {},
	"UsingComparator":          {},
	"UsingDefaultComparator":   {},
	"IgnoringFields":           {},
	"IgnoringUnexportedFields": {},
	"IgnoringEmptyCollections": {},
	"WithFloatTolerance":       {},
	"Configuration":            {},
	"String":                   {},
}

// NotIntercepted returns the sorted names of methods that are never intercepted.
func NotIntercepted() []string {
	names := make([]string, 0, len(notIntercepted))
	for name := range notIntercepted {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Method describes one exported method of a wrapper type.
type Method struct {
	Name string
	// Result is the single declared result type, or nil.
	Result reflect.Type
	// Intercepted is false for the methods listed by NotIntercepted.
	Intercepted bool
	// Navigates is true when Result is a wrapper type other than the base.
	Navigates bool
}

// AugmentedType is the descriptor the cache builds for a base wrapper type.
type AugmentedType struct {
	base       reflect.Type
	methods    map[string]Method
	generation int64
}

// Base returns the wrapper type the descriptor was built for.
func (a *AugmentedType) Base() reflect.Type { return a.base }

// Generation returns the sequence number of the generator run that built a.
func (a *AugmentedType) Generation() int64 { return a.generation }

// Method returns the descriptor of name.
func (a *AugmentedType) Method(name string) (Method, bool) {
	m, ok := a.methods[name]

	return m, ok
}

// Methods returns every method, sorted by name.
func (a *AugmentedType) Methods() []Method {
	out := make([]Method, 0, len(a.methods))
	for _, m := range a.methods {
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

func describe(base reflect.Type, generation int64) *AugmentedType {
	aug := &AugmentedType{
		base:       base,
		methods:    make(map[string]Method, base.NumMethod()),
		generation: generation,
	}

	for i := 0; i < base.NumMethod(); i++ {
		rm := base.Method(i)

		m := Method{Name: rm.Name}
		if rm.Type.NumOut() == 1 {
			m.Result = rm.Type.Out(0)
		}

		_, excluded := notIntercepted[rm.Name]
		m.Intercepted = !excluded
		m.Navigates = m.Result != nil && m.Result != base && m.Result.Implements(assertType) && m.Result.Kind() == reflect.Pointer

		aug.methods[rm.Name] = m
	}

	return aug
}
