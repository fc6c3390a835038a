package fluent

import (
	"strings"
	"unicode/utf8"

	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/internal/safe"
	"github.com/spf13/cast"
)

// StringAssert checks a string.
type StringAssert struct {
	AbstractAssert[*StringAssert, string]
}

func newStringAssert(actual string) *StringAssert {
	a := &StringAssert{}
	a.init(a, actual)

	return a
}

// IsEmpty checks that the subject is "".
func (a *StringAssert) IsEmpty() *StringAssert {
	return a.check("IsEmpty", func() {
		if a.actual != "" {
			a.failf("expected empty string but was %s", a.render(a.actual))
		}
	})
}

// IsNotEmpty checks that the subject is not "".
func (a *StringAssert) IsNotEmpty() *StringAssert {
	return a.check("IsNotEmpty", func() {
		if a.actual == "" {
			a.failf("expected a non-empty string")
		}
	})
}

// IsBlank checks that the subject holds only white space.
func (a *StringAssert) IsBlank() *StringAssert {
	return a.check("IsBlank", func() {
		if strings.TrimSpace(a.actual) != "" {
			a.failf("expected %s to be blank", a.render(a.actual))
		}
	})
}

// HasLength checks the number of runes in the subject.
func (a *StringAssert) HasLength(n int) *StringAssert {
	return a.check("HasLength", func() {
		if got := utf8.RuneCountInString(a.actual); got != n {
			a.failf("expected %s to have length %d but was %d", a.render(a.actual), n, got)
		}
	})
}

// Contains checks that the subject contains every value.
func (a *StringAssert) Contains(values ...string) *StringAssert {
	return a.check("Contains", func() {
		var missing []string

		for _, v := range values {
			if !strings.Contains(a.actual, v) {
				missing = append(missing, v)
			}
		}

		if len(missing) > 0 {
			a.failf("expected %s to contain %s", a.render(a.actual), a.render(missing))
		}
	})
}

// DoesNotContain checks that the subject contains none of values.
func (a *StringAssert) DoesNotContain(values ...string) *StringAssert {
	return a.check("DoesNotContain", func() {
		for _, v := range values {
			if strings.Contains(a.actual, v) {
				a.failf("expected %s not to contain %s", a.render(a.actual), a.render(v))
			}
		}
	})
}

// StartsWith checks the prefix of the subject.
func (a *StringAssert) StartsWith(prefix string) *StringAssert {
	return a.check("StartsWith", func() {
		if !strings.HasPrefix(a.actual, prefix) {
			a.failf("expected %s to start with %s", a.render(a.actual), a.render(prefix))
		}
	})
}

// EndsWith checks the suffix of the subject.
func (a *StringAssert) EndsWith(suffix string) *StringAssert {
	return a.check("EndsWith", func() {
		if !strings.HasSuffix(a.actual, suffix) {
			a.failf("expected %s to end with %s", a.render(a.actual), a.render(suffix))
		}
	})
}

// IsEqualToIgnoringCase compares under Unicode case folding.
func (a *StringAssert) IsEqualToIgnoringCase(expected string) *StringAssert {
	return a.check("IsEqualToIgnoringCase", func() {
		if !strings.EqualFold(a.actual, expected) {
			a.failf("expected %s to be equal to %s ignoring case", a.render(a.actual), a.render(expected))
		}
	})
}

// MatchesPattern checks the subject against a regular expression. An invalid
// pattern is a configuration error.
func (a *StringAssert) MatchesPattern(pattern string) *StringAssert {
	return a.check("MatchesPattern", func() {
		matched, err := safe.MatchString(pattern, a.actual)
		if err != nil {
			failure.Raise(&failure.ConfigurationError{Op: "MatchesPattern", Reason: "invalid pattern", Err: err})
		}

		if !matched {
			a.failf("expected %s to match pattern %q", a.render(a.actual), pattern)
		}
	})
}

// AsInt parses the subject as an integer.
func (a *StringAssert) AsInt() *IntAssert {
	return navigate(a, "AsInt", func() *IntAssert {
		n, err := cast.ToInt64E(strings.TrimSpace(a.actual))
		if err != nil {
			a.failf("expected %s to be an integer: %v", a.render(a.actual), err)
		}

		return newIntAssert(n)
	})
}

// AsFloat parses the subject as a float.
func (a *StringAssert) AsFloat() *FloatAssert {
	return navigate(a, "AsFloat", func() *FloatAssert {
		f, err := cast.ToFloat64E(strings.TrimSpace(a.actual))
		if err != nil {
			a.failf("expected %s to be a number: %v", a.render(a.actual), err)
		}

		return newFloatAssert(f)
	})
}

// Lines splits the subject on line breaks.
func (a *StringAssert) Lines() *SliceAssert {
	return navigate(a, "Lines", func() *SliceAssert {
		lines := strings.Split(a.actual, "\n")

		out := make([]any, len(lines))
		for i, line := range lines {
			out[i] = strings.TrimSuffix(line, "\r")
		}

		return newSliceAssert(out)
	})
}
