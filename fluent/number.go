package fluent

import (
	"math"
)

// IntAssert checks an integer, widened to int64.
type IntAssert struct {
	ComparableAssert[*IntAssert, int64]
}

func newIntAssert(actual int64) *IntAssert {
	a := &IntAssert{}
	a.init(a, actual)

	return a
}

// IsEven checks that the subject is divisible by two.
func (a *IntAssert) IsEven() *IntAssert {
	return a.check("IsEven", func() {
		if a.actual%2 != 0 {
			a.failf("expected %s to be even", a.render(a.actual))
		}
	})
}

// IsOdd checks that the subject is not divisible by two.
func (a *IntAssert) IsOdd() *IntAssert {
	return a.check("IsOdd", func() {
		if a.actual%2 == 0 {
			a.failf("expected %s to be odd", a.render(a.actual))
		}
	})
}

// FloatAssert checks a float64.
type FloatAssert struct {
	ComparableAssert[*FloatAssert, float64]
}

func newFloatAssert(actual float64) *FloatAssert {
	a := &FloatAssert{}
	a.init(a, actual)

	return a
}

// IsCloseTo checks |subject - expected| <= tolerance.
func (a *FloatAssert) IsCloseTo(expected, tolerance float64) *FloatAssert {
	return a.check("IsCloseTo", func() {
		if math.IsNaN(a.actual) || math.Abs(a.actual-expected) > math.Abs(tolerance) {
			a.failf("expected %s to be close to %s by less than %s", a.render(a.actual), a.render(expected), a.render(tolerance))
		}
	})
}

// IsNaN checks that the subject is not a number.
func (a *FloatAssert) IsNaN() *FloatAssert {
	return a.check("IsNaN", func() {
		if !math.IsNaN(a.actual) {
			a.failf("expected %s to be NaN", a.render(a.actual))
		}
	})
}

// IsFinite checks that the subject is neither NaN nor infinite.
func (a *FloatAssert) IsFinite() *FloatAssert {
	return a.check("IsFinite", func() {
		if math.IsNaN(a.actual) || math.IsInf(a.actual, 0) {
			a.failf("expected %s to be finite", a.render(a.actual))
		}
	})
}

// BoolAssert checks a bool.
type BoolAssert struct {
	AbstractAssert[*BoolAssert, bool]
}

func newBoolAssert(actual bool) *BoolAssert {
	a := &BoolAssert{}
	a.init(a, actual)

	return a
}

// IsTrue checks that the subject is true.
func (a *BoolAssert) IsTrue() *BoolAssert {
	return a.check("IsTrue", func() {
		if !a.actual {
			a.failf("expected true but was false")
		}
	})
}

// IsFalse checks that the subject is false.
func (a *BoolAssert) IsFalse() *BoolAssert {
	return a.check("IsFalse", func() {
		if a.actual {
			a.failf("expected false but was true")
		}
	})
}
