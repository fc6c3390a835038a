package fluent

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/LerianStudio/lib-fluent/fluent/compare"
	"github.com/LerianStudio/lib-fluent/fluent/internal/nilcheck"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ObjectAssert checks a value of any type.
type ObjectAssert struct {
	AbstractAssert[*ObjectAssert, any]
}

func newObjectAssert(actual any) *ObjectAssert {
	a := &ObjectAssert{}
	a.init(a, actual)

	return a
}

// IsNil checks that the subject is nil, including typed nils.
func (a *ObjectAssert) IsNil() *ObjectAssert {
	return a.check("IsNil", func() {
		if !nilcheck.Interface(a.actual) {
			a.failf("expected nil but was %s", a.render(a.actual))
		}
	})
}

// IsNotNil checks that the subject is not nil.
func (a *ObjectAssert) IsNotNil() *ObjectAssert {
	return a.check("IsNotNil", func() {
		if nilcheck.Interface(a.actual) {
			a.failf("expected a value but was nil")
		}
	})
}

// IsInstanceOf checks that the subject has the dynamic type of sample.
func (a *ObjectAssert) IsInstanceOf(sample any) *ObjectAssert {
	return a.check("IsInstanceOf", func() {
		want, got := reflect.TypeOf(sample), reflect.TypeOf(a.actual)
		if want != got {
			a.failf("expected %s to be an instance of %v but was %v", a.render(a.actual), want, got)
		}
	})
}

// ExtractingField returns a wrapper over a struct field or string-keyed map
// entry. Nested fields are reached with a dotted path such as "Owner.Name".
func (a *ObjectAssert) ExtractingField(path string) *ObjectAssert {
	return navigate(a, "ExtractingField", func() *ObjectAssert {
		v, err := fieldValue(a.actual, path)
		if err != nil {
			a.failf("cannot extract %q from %s: %v", path, a.render(a.actual), err)
		}

		return newObjectAssert(v)
	})
}

// AsString narrows the subject to a string.
func (a *ObjectAssert) AsString() *StringAssert {
	return navigate(a, "AsString", func() *StringAssert {
		s, err := cast.ToStringE(a.actual)
		a.narrowed("string", err)

		return newStringAssert(s)
	})
}

// AsInt narrows the subject to an int64.
func (a *ObjectAssert) AsInt() *IntAssert {
	return navigate(a, "AsInt", func() *IntAssert {
		n, err := cast.ToInt64E(a.actual)
		a.narrowed("int64", err)

		return newIntAssert(n)
	})
}

// AsFloat narrows the subject to a float64.
func (a *ObjectAssert) AsFloat() *FloatAssert {
	return navigate(a, "AsFloat", func() *FloatAssert {
		f, err := cast.ToFloat64E(a.actual)
		a.narrowed("float64", err)

		return newFloatAssert(f)
	})
}

// AsBool narrows the subject to a bool.
func (a *ObjectAssert) AsBool() *BoolAssert {
	return navigate(a, "AsBool", func() *BoolAssert {
		b, err := cast.ToBoolE(a.actual)
		a.narrowed("bool", err)

		return newBoolAssert(b)
	})
}

// AsDecimal narrows the subject to a decimal. Strings are parsed, numbers
// converted exactly where possible.
func (a *ObjectAssert) AsDecimal() *DecimalAssert {
	return navigate(a, "AsDecimal", func() *DecimalAssert {
		d, err := toDecimal(a.actual)
		a.narrowed("decimal", err)

		return newDecimalAssert(d)
	})
}

// AsError narrows the subject to a non-nil error.
func (a *ObjectAssert) AsError() *ErrorAssert {
	return navigate(a, "AsError", func() *ErrorAssert {
		err, ok := a.actual.(error)
		if !ok || nilcheck.Interface(err) {
			a.failf("expected %s to be an error", a.render(a.actual))
		}

		return newErrorAssert(err)
	})
}

// AsSlice narrows a slice or array subject to its elements.
func (a *ObjectAssert) AsSlice() *SliceAssert {
	return navigate(a, "AsSlice", func() *SliceAssert {
		elems, ok := toSlice(a.actual)
		if !ok {
			a.failf("expected %s to be a slice or an array", a.render(a.actual))
		}

		return newSliceAssert(elems)
	})
}

// AsMap narrows a map subject.
func (a *ObjectAssert) AsMap() *MapAssert {
	return navigate(a, "AsMap", func() *MapAssert {
		m, ok := toMap(a.actual)
		if !ok {
			a.failf("expected %s to be a map", a.render(a.actual))
		}

		return newMapAssert(m)
	})
}

// UsingRecursiveComparison returns a wrapper comparing the subject field by
// field.
func (a *ObjectAssert) UsingRecursiveComparison() *RecursiveComparisonAssert {
	return navigate(a, "UsingRecursiveComparison", func() *RecursiveComparisonAssert {
		return newRecursiveComparisonAssert(a.actual, compare.NewRecursiveConfiguration())
	})
}

func (a *ObjectAssert) narrowed(target string, err error) {
	if err != nil {
		a.failf("expected %s to be convertible to %s: %v", a.render(a.actual), target, err)
	}
}

func fieldValue(v any, path string) (any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty field path")
	}

	current := reflect.ValueOf(v)

	for _, name := range strings.Split(path, ".") {
		for current.IsValid() && (current.Kind() == reflect.Pointer || current.Kind() == reflect.Interface) {
			if current.IsNil() {
				return nil, fmt.Errorf("nil value before %q", name)
			}

			current = current.Elem()
		}

		switch {
		case !current.IsValid():
			return nil, fmt.Errorf("nil value before %q", name)
		case current.Kind() == reflect.Struct:
			field := current.FieldByName(name)
			if !field.IsValid() {
				return nil, fmt.Errorf("no field %q in %v", name, current.Type())
			}

			if !field.CanInterface() {
				return nil, fmt.Errorf("field %q of %v is not exported", name, current.Type())
			}

			current = field
		case current.Kind() == reflect.Map && current.Type().Key().Kind() == reflect.String:
			entry := current.MapIndex(reflect.ValueOf(name).Convert(current.Type().Key()))
			if !entry.IsValid() {
				return nil, fmt.Errorf("no key %q", name)
			}

			current = entry
		default:
			return nil, fmt.Errorf("%v has no fields", current.Type())
		}
	}

	return current.Interface(), nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case *decimal.Decimal:
		if x == nil {
			return decimal.Decimal{}, fmt.Errorf("nil decimal")
		}

		return *x, nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(x))
	case float32:
		return decimal.NewFromFloat32(x), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	}

	n, err := cast.ToInt64E(v)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return decimal.NewFromInt(n), nil
}

func toSlice(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}

	if elems, ok := v.([]any); ok {
		return elems, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return nil, true
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}

func toMap(v any) (map[any]any, bool) {
	if v == nil {
		return nil, false
	}

	if m, ok := v.(map[any]any); ok {
		return m, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}

	if rv.IsNil() {
		return nil, true
	}

	out := make(map[any]any, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().Interface()] = iter.Value().Interface()
	}

	return out, true
}
