package compare

import (
	"go/token"
	"reflect"
	"sort"
	"strings"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// RecursiveConfiguration controls a field-by-field comparison. The zero
// value compares every field, exported or not, with exact equality.
type RecursiveConfiguration struct {
	ignoredFields    map[string]struct{}
	ignoreUnexported bool
	equateEmpty      bool
	floatFraction    float64
	floatMargin      float64
}

// NewRecursiveConfiguration returns an empty configuration.
func NewRecursiveConfiguration() *RecursiveConfiguration {
	return &RecursiveConfiguration{ignoredFields: map[string]struct{}{}}
}

// Clone returns an independent copy.
func (c *RecursiveConfiguration) Clone() *RecursiveConfiguration {
	clone := NewRecursiveConfiguration()
	if c == nil {
		return clone
	}

	for f := range c.ignoredFields {
		clone.ignoredFields[f] = struct{}{}
	}

	clone.ignoreUnexported = c.ignoreUnexported
	clone.equateEmpty = c.equateEmpty
	clone.floatFraction = c.floatFraction
	clone.floatMargin = c.floatMargin

	return clone
}

// IgnoreFields skips fields by dotted path from the root, e.g. "Address.Zip".
func (c *RecursiveConfiguration) IgnoreFields(paths ...string) {
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			c.ignoredFields[p] = struct{}{}
		}
	}
}

// IgnoredFields returns the ignored paths, sorted.
func (c *RecursiveConfiguration) IgnoredFields() []string {
	out := make([]string, 0, len(c.ignoredFields))
	for f := range c.ignoredFields {
		out = append(out, f)
	}

	sort.Strings(out)

	return out
}

// IgnoreUnexported skips unexported fields instead of comparing them.
func (c *RecursiveConfiguration) IgnoreUnexported(ignore bool) { c.ignoreUnexported = ignore }

// EquateEmpty treats nil and empty slices and maps as equal.
func (c *RecursiveConfiguration) EquateEmpty(equate bool) { c.equateEmpty = equate }

// EquateApprox treats floats as equal within fraction or margin.
func (c *RecursiveConfiguration) EquateApprox(fraction, margin float64) {
	c.floatFraction = fraction
	c.floatMargin = margin
}

// Options returns the go-cmp options the configuration stands for.
func (c *RecursiveConfiguration) Options() []gocmp.Option {
	opts := []gocmp.Option{cmpopts.EquateErrors()}

	if c.ignoreUnexported {
		opts = append(opts, gocmp.FilterPath(isUnexportedField, gocmp.Ignore()), gocmp.Exporter(func(reflect.Type) bool { return true }))
	} else {
		opts = append(opts, exportAll)
	}

	if len(c.ignoredFields) > 0 {
		ignored := c.ignoredFields
		opts = append(opts, gocmp.FilterPath(func(p gocmp.Path) bool {
			_, skip := ignored[fieldPath(p)]
			return skip
		}, gocmp.Ignore()))
	}

	if c.equateEmpty {
		opts = append(opts, cmpopts.EquateEmpty())
	}

	if c.floatFraction > 0 || c.floatMargin > 0 {
		opts = append(opts, cmpopts.EquateApprox(c.floatFraction, c.floatMargin))
	}

	return opts
}

// Equal compares actual and expected field by field.
func (c *RecursiveConfiguration) Equal(actual, expected any) bool {
	return gocmp.Equal(actual, expected, c.Options()...)
}

// String describes the configuration for failure messages.
func (c *RecursiveConfiguration) String() string {
	var parts []string

	if fields := c.IgnoredFields(); len(fields) > 0 {
		parts = append(parts, "ignoring fields "+strings.Join(fields, ", "))
	}

	if c.ignoreUnexported {
		parts = append(parts, "ignoring unexported fields")
	}

	if c.equateEmpty {
		parts = append(parts, "treating nil and empty collections as equal")
	}

	if c.floatFraction > 0 || c.floatMargin > 0 {
		parts = append(parts, "comparing floats approximately")
	}

	if len(parts) == 0 {
		return "default recursive comparison"
	}

	return strings.Join(parts, "; ")
}

func isUnexportedField(p gocmp.Path) bool {
	sf, ok := p.Last().(gocmp.StructField)
	if !ok {
		return false
	}

	return !token.IsExported(sf.Name())
}

// fieldPath joins the struct field names of p with dots, skipping pointer
// indirections and other non-field steps.
func fieldPath(p gocmp.Path) string {
	var names []string

	for _, step := range p {
		if sf, ok := step.(gocmp.StructField); ok {
			names = append(names, sf.Name())
		}
	}

	return strings.Join(names, ".")
}
