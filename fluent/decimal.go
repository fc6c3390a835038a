package fluent

import (
	"github.com/shopspring/decimal"
)

// DecimalAssert checks an arbitrary-precision decimal. Equality and ordering
// compare values, so 1.0 equals 1.00; use Scale to check the representation.
type DecimalAssert struct {
	ComparableAssert[*DecimalAssert, decimal.Decimal]
}

func newDecimalAssert(actual decimal.Decimal) *DecimalAssert {
	a := &DecimalAssert{}
	a.init(a, actual)

	return a
}

// IsEqualToString parses expected and compares by value.
func (a *DecimalAssert) IsEqualToString(expected string) *DecimalAssert {
	return a.check("IsEqualToString", func() {
		want, err := decimal.NewFromString(expected)
		if err != nil {
			a.failf("expected value %q is not a decimal: %v", expected, err)
		}

		if !a.actual.Equal(want) {
			a.failf("expected: %s\n but was: %s", want.String(), a.actual.String())
		}
	})
}

// IsInteger checks that the subject has no fractional part.
func (a *DecimalAssert) IsInteger() *DecimalAssert {
	return a.check("IsInteger", func() {
		if !a.actual.IsInteger() {
			a.failf("expected %s to be an integer", a.actual.String())
		}
	})
}

// Scale returns a wrapper over the number of digits after the decimal point.
// ReturnToDecimal leads back.
func (a *DecimalAssert) Scale() *DecimalScaleAssert {
	return navigate(a, "Scale", func() *DecimalScaleAssert {
		return newDecimalScaleAssert(-a.actual.Exponent(), a)
	})
}

// DecimalScaleAssert checks the scale of a decimal and leads back to it.
type DecimalScaleAssert struct {
	ComparableAssert[*DecimalScaleAssert, int32]
	parent *DecimalAssert
}

func newDecimalScaleAssert(scale int32, parent *DecimalAssert) *DecimalScaleAssert {
	a := &DecimalScaleAssert{parent: parent}
	a.init(a, scale)

	if parent != nil {
		a.core.SetParent(parent)
	}

	return a
}

// ReturnToDecimal returns the wrapper Scale was called on.
func (a *DecimalScaleAssert) ReturnToDecimal() *DecimalAssert {
	return back(a, "ReturnToDecimal", func() *DecimalAssert {
		return a.parent
	})
}
