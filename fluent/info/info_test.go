//go:build unit

package info

import (
	"testing"

	"github.com/LerianStudio/lib-fluent/fluent/compare"
	"github.com/LerianStudio/lib-fluent/fluent/description"
	"github.com/LerianStudio/lib-fluent/fluent/presentation"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	i := New()

	assert.Empty(t, i.Description())
	assert.Empty(t, i.Overriding())
	assert.Equal(t, presentation.Standard, i.Representation())
	assert.True(t, compare.IsStandard(i.Comparison()))
	assert.Equal(t, `"x"`, i.Render("x"))
}

func TestFailHonoursDescriptionAndOverride(t *testing.T) {
	t.Parallel()

	i := New()
	i.Describe(description.Text("age of %s", "Frodo"))

	err := i.FailWithValues("expected: 3\n but was: 2", 2, 3, true)
	assert.Equal(t, "[age of Frodo] expected: 3\n but was: 2", err.Error())
	assert.Equal(t, 2, err.Actual)
	assert.True(t, err.HasValues)

	i.Override("custom %d", 7)
	assert.Equal(t, "[age of Frodo] custom 7", i.Fail("ignored").Error())

	i.Override("")
	assert.Equal(t, "[age of Frodo] back", i.Fail("back").Error())
}

func TestOverrideIsLazy(t *testing.T) {
	t.Parallel()

	calls := 0
	i := New()
	i.OverrideWith(func() string {
		calls++
		return "lazy"
	})

	assert.Equal(t, 0, calls)
	assert.Equal(t, "lazy", i.Fail("x").Message)
	assert.Equal(t, 1, calls)
}

func TestCloneAndCopyFrom(t *testing.T) {
	t.Parallel()

	source := New()
	source.Describe(description.Text("src"))
	source.SetRepresentation(presentation.Hexadecimal)
	source.SetComparison(compare.Comparator("any", func(any, any) int { return 0 }))

	clone := source.Clone()
	clone.Describe(description.Text("changed"))
	assert.Equal(t, "src", source.Description())

	target := New()
	target.CopyFrom(source)
	assert.Equal(t, "src", target.Description())
	assert.Equal(t, "0xFF", target.Render(255))
	assert.False(t, compare.IsStandard(target.Comparison()))

	target.SetRepresentation(nil)
	target.SetComparison(nil)
	assert.Equal(t, presentation.Standard, target.Representation())
	assert.True(t, compare.IsStandard(target.Comparison()))
}
