//go:build unit

package compare

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	ID      string
	Balance float64
	Tags    []string
	secret  string
	Owner   *owner
}

type owner struct {
	Name string
	Zip  string
}

func TestStandardAreEqual(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("not found")

	tests := []struct {
		name  string
		a, b  any
		equal bool
	}{
		{name: "ints", a: 1, b: 1, equal: true},
		{name: "different int types", a: 1, b: int64(1), equal: false},
		{name: "strings", a: "ab", b: "ba", equal: false},
		{name: "unexported fields compared", a: account{secret: "x"}, b: account{secret: "y"}, equal: false},
		{name: "decimal by value", a: decimal.RequireFromString("1.50"), b: decimal.RequireFromString("1.5"), equal: true},
		{name: "wrapped error", a: fmt.Errorf("ctx: %w", sentinel), b: sentinel, equal: true},
		{name: "nils", a: nil, b: nil, equal: true},
		{name: "slices", a: []int{1, 2}, b: []int{1, 2}, equal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.equal, Standard.AreEqual(tt.a, tt.b))
		})
	}
}

func TestStandardCompare(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		a, b    any
		want    int
		wantErr bool
	}{
		{name: "ints of different width", a: int8(1), b: int64(2), want: -1},
		{name: "uints", a: uint(3), b: uint8(3), want: 0},
		{name: "floats", a: 2.5, b: float32(1), want: 1},
		{name: "strings", a: "b", b: "a", want: 1},
		{name: "decimals", a: decimal.NewFromInt(1), b: decimal.NewFromInt(2), want: -1},
		{name: "times", a: now.Add(time.Second), b: now, want: 1},
		{name: "mixed", a: 1, b: "1", wantErr: true},
		{name: "nil", a: nil, b: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Standard.Compare(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComparator(t *testing.T) {
	t.Parallel()

	byLength := Comparator("by length", func(a, b any) int {
		return len(a.(string)) - len(b.(string))
	})

	assert.True(t, byLength.AreEqual("ab", "ba"))
	assert.False(t, byLength.AreEqual("ab", "abc"))

	got, err := byLength.Compare("abcd", "a")
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	assert.Equal(t, "comparator by length", byLength.String())
	assert.False(t, IsStandard(byLength))
	assert.True(t, IsStandard(Comparator("nil", nil)))
	assert.True(t, IsStandard(nil))
}

func TestContains(t *testing.T) {
	t.Parallel()

	values := []any{"a", 2, nil}

	assert.True(t, Contains(nil, values, 2))
	assert.True(t, Contains(Standard, values, nil))
	assert.Equal(t, 0, IndexOf(Standard, values, "a"))
	assert.Equal(t, -1, IndexOf(Standard, values, "z"))
}

func TestRecursiveConfiguration(t *testing.T) {
	t.Parallel()

	actual := account{ID: "1", Balance: 10.0001, secret: "a", Owner: &owner{Name: "Frodo", Zip: "111"}}
	expected := account{ID: "1", Balance: 10, Tags: []string{}, secret: "b", Owner: &owner{Name: "Frodo", Zip: "999"}}

	cfg := NewRecursiveConfiguration()
	assert.False(t, cfg.Equal(actual, expected))
	assert.Equal(t, "default recursive comparison", cfg.String())

	cfg.IgnoreFields("Owner.Zip", " ")
	cfg.IgnoreUnexported(true)
	cfg.EquateEmpty(true)
	cfg.EquateApprox(0, 0.001)

	assert.True(t, cfg.Equal(actual, expected))
	assert.Equal(t, []string{"Owner.Zip"}, cfg.IgnoredFields())
	assert.Contains(t, cfg.String(), "ignoring fields Owner.Zip")

	clone := cfg.Clone()
	clone.IgnoreFields("ID")
	assert.Equal(t, []string{"Owner.Zip"}, cfg.IgnoredFields())
	assert.Equal(t, []string{"ID", "Owner.Zip"}, clone.IgnoredFields())
}
