package fluent

import (
	"github.com/LerianStudio/lib-fluent/fluent/compare"
	"github.com/LerianStudio/lib-fluent/fluent/failure"
)

// RecursiveComparisonAssert compares its subject field by field. The
// configuration methods change how the next checks compare.
type RecursiveComparisonAssert struct {
	AbstractAssert[*RecursiveComparisonAssert, any]
	config *compare.RecursiveConfiguration
}

func newRecursiveComparisonAssert(actual any, config *compare.RecursiveConfiguration) *RecursiveComparisonAssert {
	if config == nil {
		config = compare.NewRecursiveConfiguration()
	}

	a := &RecursiveComparisonAssert{config: config}
	a.init(a, actual)

	return a
}

// Configuration returns the comparison configuration.
func (a *RecursiveComparisonAssert) Configuration() *compare.RecursiveConfiguration {
	return a.config
}

// IgnoringFields skips fields by dotted path from the root, e.g. "Owner.ID".
func (a *RecursiveComparisonAssert) IgnoringFields(paths ...string) *RecursiveComparisonAssert {
	a.config.IgnoreFields(paths...)

	return a
}

// IgnoringUnexportedFields skips unexported fields.
func (a *RecursiveComparisonAssert) IgnoringUnexportedFields() *RecursiveComparisonAssert {
	a.config.IgnoreUnexported(true)

	return a
}

// IgnoringEmptyCollections treats nil and empty slices and maps as equal.
func (a *RecursiveComparisonAssert) IgnoringEmptyCollections() *RecursiveComparisonAssert {
	a.config.EquateEmpty(true)

	return a
}

// WithFloatTolerance treats floats as equal within fraction or margin.
func (a *RecursiveComparisonAssert) WithFloatTolerance(fraction, margin float64) *RecursiveComparisonAssert {
	a.config.EquateApprox(fraction, margin)

	return a
}

// IsEqualTo compares the subject with expected field by field.
func (a *RecursiveComparisonAssert) IsEqualTo(expected any) *RecursiveComparisonAssert {
	return a.check("IsEqualTo", func() {
		if !a.config.Equal(a.actual, expected) {
			err := shouldBeEqual(a.core.Info(), a.actual, expected, a.config.Options()...)
			if a.core.Info().Overriding() == "" {
				err.Message += "\nwhen recursively comparing field by field (" + a.config.String() + ")"
			}

			failure.Raise(err)
		}
	})
}

// IsNotEqualTo checks that at least one compared field differs.
func (a *RecursiveComparisonAssert) IsNotEqualTo(other any) *RecursiveComparisonAssert {
	return a.check("IsNotEqualTo", func() {
		if a.config.Equal(a.actual, other) {
			a.failf("expected %s not to be equal to %s when recursively comparing field by field (%s)",
				a.render(a.actual), a.render(other), a.config.String())
		}
	})
}
