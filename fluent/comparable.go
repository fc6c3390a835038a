package fluent

import (
	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/proxy"
)

// ComparableAssert adds ordering checks to subjects the comparison strategy
// can order: integers, floats, strings, decimals and times.
type ComparableAssert[S proxy.Assert, A any] struct {
	AbstractAssert[S, A]
}

// IsGreaterThan checks that the subject is strictly greater than other.
func (c *ComparableAssert[S, A]) IsGreaterThan(other A) S {
	return c.check("IsGreaterThan", func() {
		if c.compareTo("IsGreaterThan", other) <= 0 {
			c.failf("expected %s to be greater than %s", c.render(c.actual), c.render(other))
		}
	})
}

// IsGreaterThanOrEqualTo checks that the subject is not less than other.
func (c *ComparableAssert[S, A]) IsGreaterThanOrEqualTo(other A) S {
	return c.check("IsGreaterThanOrEqualTo", func() {
		if c.compareTo("IsGreaterThanOrEqualTo", other) < 0 {
			c.failf("expected %s to be greater than or equal to %s", c.render(c.actual), c.render(other))
		}
	})
}

// IsLessThan checks that the subject is strictly less than other.
func (c *ComparableAssert[S, A]) IsLessThan(other A) S {
	return c.check("IsLessThan", func() {
		if c.compareTo("IsLessThan", other) >= 0 {
			c.failf("expected %s to be less than %s", c.render(c.actual), c.render(other))
		}
	})
}

// IsLessThanOrEqualTo checks that the subject is not greater than other.
func (c *ComparableAssert[S, A]) IsLessThanOrEqualTo(other A) S {
	return c.check("IsLessThanOrEqualTo", func() {
		if c.compareTo("IsLessThanOrEqualTo", other) > 0 {
			c.failf("expected %s to be less than or equal to %s", c.render(c.actual), c.render(other))
		}
	})
}

// IsBetween checks start <= subject <= end.
func (c *ComparableAssert[S, A]) IsBetween(start, end A) S {
	return c.check("IsBetween", func() {
		if c.compareTo("IsBetween", start) < 0 || c.compareTo("IsBetween", end) > 0 {
			c.failf("expected %s to be between %s and %s", c.render(c.actual), c.render(start), c.render(end))
		}
	})
}

// IsZero checks that the subject compares equal to the zero value.
func (c *ComparableAssert[S, A]) IsZero() S {
	return c.check("IsZero", func() {
		var zero A
		if c.compareTo("IsZero", zero) != 0 {
			c.failf("expected %s to be zero", c.render(c.actual))
		}
	})
}

// IsNotZero checks that the subject differs from the zero value.
func (c *ComparableAssert[S, A]) IsNotZero() S {
	return c.check("IsNotZero", func() {
		var zero A
		if c.compareTo("IsNotZero", zero) == 0 {
			c.failf("expected %s not to be zero", c.render(c.actual))
		}
	})
}

// IsPositive checks that the subject is greater than the zero value.
func (c *ComparableAssert[S, A]) IsPositive() S {
	return c.check("IsPositive", func() {
		var zero A
		if c.compareTo("IsPositive", zero) <= 0 {
			c.failf("expected %s to be positive", c.render(c.actual))
		}
	})
}

// IsNegative checks that the subject is less than the zero value.
func (c *ComparableAssert[S, A]) IsNegative() S {
	return c.check("IsNegative", func() {
		var zero A
		if c.compareTo("IsNegative", zero) >= 0 {
			c.failf("expected %s to be negative", c.render(c.actual))
		}
	})
}

func (c *ComparableAssert[S, A]) compareTo(method string, other A) int {
	result, err := c.core.Info().Comparison().Compare(c.actual, other)
	if err != nil {
		failure.Raise(&failure.ConfigurationError{Op: method, Reason: "values are not ordered", Err: err})
	}

	return result
}
