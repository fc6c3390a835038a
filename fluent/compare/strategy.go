package compare

import (
	"cmp"
	"fmt"
	"reflect"
	"time"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
)

// Strategy compares an actual value with another value.
type Strategy interface {
	AreEqual(actual, other any) bool
	// Compare returns -1, 0 or +1, or an error when the values are not ordered.
	Compare(actual, other any) (int, error)
	String() string
}

// Standard is the default strategy.
var Standard Strategy = standardStrategy{}

var exportAll = gocmp.Exporter(func(reflect.Type) bool { return true })

// EqualityOptions are the go-cmp options behind Standard.
func EqualityOptions() []gocmp.Option {
	return []gocmp.Option{exportAll, cmpopts.EquateErrors()}
}

type standardStrategy struct{}

func (standardStrategy) String() string { return "standard" }

func (standardStrategy) AreEqual(actual, other any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = reflect.DeepEqual(actual, other)
		}
	}()

	return gocmp.Equal(actual, other, EqualityOptions()...)
}

func (standardStrategy) Compare(actual, other any) (int, error) {
	switch a := actual.(type) {
	case decimal.Decimal:
		if b, ok := other.(decimal.Decimal); ok {
			return a.Cmp(b), nil
		}
	case time.Time:
		if b, ok := other.(time.Time); ok {
			return a.Compare(b), nil
		}
	}

	return compareOrdered(actual, other)
}

func compareOrdered(actual, other any) (int, error) {
	av, bv := reflect.ValueOf(actual), reflect.ValueOf(other)
	if !av.IsValid() || !bv.IsValid() {
		return 0, fmt.Errorf("cannot order nil values")
	}

	switch {
	case isInt(av.Kind()) && isInt(bv.Kind()):
		return cmp.Compare(av.Int(), bv.Int()), nil
	case isUint(av.Kind()) && isUint(bv.Kind()):
		return cmp.Compare(av.Uint(), bv.Uint()), nil
	case isFloat(av.Kind()) && isFloat(bv.Kind()):
		return cmp.Compare(av.Float(), bv.Float()), nil
	case av.Kind() == reflect.String && bv.Kind() == reflect.String:
		return cmp.Compare(av.String(), bv.String()), nil
	}

	return 0, fmt.Errorf("cannot order %T against %T", actual, other)
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// Comparator returns a strategy backed by fn, which follows the
// cmp.Compare contract. name is used in failure messages.
func Comparator(name string, fn func(a, b any) int) Strategy {
	if fn == nil {
		return Standard
	}

	return comparatorStrategy{name: name, fn: fn}
}

type comparatorStrategy struct {
	name string
	fn   func(a, b any) int
}

func (c comparatorStrategy) String() string {
	return "comparator " + c.name
}

func (c comparatorStrategy) AreEqual(actual, other any) bool {
	return c.fn(actual, other) == 0
}

func (c comparatorStrategy) Compare(actual, other any) (int, error) {
	return cmp.Compare(c.fn(actual, other), 0), nil
}

// IsStandard reports whether s is nil or the standard strategy.
func IsStandard(s Strategy) bool {
	_, ok := s.(standardStrategy)

	return s == nil || ok
}

// IndexOf returns the index of the first element of values equal to target, or -1.
func IndexOf(s Strategy, values []any, target any) int {
	if s == nil {
		s = Standard
	}

	for i, v := range values {
		if s.AreEqual(v, target) {
			return i
		}
	}

	return -1
}

// Contains reports whether values holds an element equal to target.
func Contains(s Strategy, values []any, target any) bool {
	return IndexOf(s, values, target) >= 0
}
