//go:build unit

package presentation

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type hobbit struct {
	Name string
	Age  int
}

func TestStandardRender(t *testing.T) {
	t.Parallel()

	var nilPtr *hobbit

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: "nil"},
		{name: "typed nil", value: nilPtr, want: "(*presentation.hobbit)(nil)"},
		{name: "string", value: "ab", want: `"ab"`},
		{name: "int", value: 42, want: "42"},
		{name: "error", value: errors.New("boom"), want: `"boom"`},
		{name: "stringer", value: decimal.RequireFromString("1.50"), want: "1.5"},
		{name: "slice", value: []any{"a", 1, nil}, want: `["a", 1, nil]`},
		{name: "map sorted", value: map[string]int{"b": 2, "a": 1}, want: `{"a": 1, "b": 2}`},
		{name: "struct", value: hobbit{Name: "Frodo", Age: 33}, want: "{Name:Frodo Age:33}"},
		{name: "struct pointer", value: &hobbit{Name: "Sam", Age: 38}, want: "&{Name:Sam Age:38}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Standard.Render(tt.value))
		})
	}
}

func TestRadixRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    Representation
		in   any
		want string
	}{
		{name: "hex int", r: Hexadecimal, in: 255, want: "0xFF"},
		{name: "hex negative int8", r: Hexadecimal, in: int8(-1), want: "0xFF"},
		{name: "hex string", r: Hexadecimal, in: "AB", want: "0x4142"},
		{name: "hex bytes", r: Hexadecimal, in: []byte{0x0a, 0xff}, want: "0x0AFF"},
		{name: "binary int", r: Binary, in: 5, want: "0b101"},
		{name: "binary string", r: Binary, in: "A", want: "[0b01000001]"},
		{name: "binary falls back", r: Binary, in: true, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.r.Render(tt.in))
		})
	}
}

func TestJSONRender(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{"Name":"Frodo","Age":33}`, JSON.Render(hobbit{Name: "Frodo", Age: 33}))
	assert.Equal(t, "nil", Render(nil, nil))
	assert.Equal(t, "ok", Render(RepresentationFunc(func(any) string { return "ok" }), 1))
}

// Mutates the process-wide threshold; not parallel.
func TestTruncate(t *testing.T) {
	t.Cleanup(func() { SetMaxValueLength(DefaultMaxValueLength) })

	SetMaxValueLength(5)
	assert.Equal(t, "abcde... (truncated 3 bytes)", Truncate("abcdefgh"))
	assert.Equal(t, "abc", Truncate("abc"))

	SetMaxValueLength(2)
	cut := Truncate("héllo")
	assert.Equal(t, "h... (truncated 5 bytes)", cut)
	assert.True(t, utf8.ValidString(cut))

	SetMaxValueLength(0)
	long := strings.Repeat("x", 500)
	assert.Equal(t, long, Truncate(long))
}

// Mutates the process-wide colour flag; not parallel.
func TestDiff(t *testing.T) {
	t.Cleanup(func() { SetColorized(false) })

	assert.Empty(t, Diff(hobbit{Name: "Frodo"}, hobbit{Name: "Frodo"}))

	plain := Diff(hobbit{Name: "Frodo"}, hobbit{Name: "Sam"})
	assert.Contains(t, plain, "Frodo")
	assert.Contains(t, plain, "Sam")
	assert.NotContains(t, plain, "\x1b[")

	SetColorized(true)
	assert.Contains(t, Diff(hobbit{Name: "Frodo"}, hobbit{Name: "Sam"}), "\x1b[31m")
}
