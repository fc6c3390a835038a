package presentation

import (
	"encoding/hex"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/LerianStudio/lib-fluent/fluent/internal/nilcheck"
	jsoniter "github.com/json-iterator/go"
)

// DefaultMaxValueLength is the rendered length above which values are truncated.
const DefaultMaxValueLength = 200

const maxDepth = 6

var maxValueLength atomic.Int64

func init() {
	maxValueLength.Store(DefaultMaxValueLength)
}

// SetMaxValueLength changes the truncation threshold. n <= 0 disables truncation.
func SetMaxValueLength(n int) {
	maxValueLength.Store(int64(n))
}

// MaxValueLength returns the truncation threshold.
func MaxValueLength() int {
	return int(maxValueLength.Load())
}

// Truncate shortens s to at most the truncation threshold in bytes, noting
// how much was cut. The cut never splits a rune.
func Truncate(s string) string {
	limit := MaxValueLength()
	if limit <= 0 || len(s) <= limit {
		return s
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut] + "... (truncated " + strconv.Itoa(len(s)-cut) + " bytes)"
}

// Representation renders a value for a failure message.
type Representation interface {
	Render(value any) string
}

// RepresentationFunc adapts a function to Representation.
type RepresentationFunc func(value any) string

// Render calls f.
func (f RepresentationFunc) Render(value any) string { return f(value) }

var (
	// Standard quotes strings, expands collections element by element and
	// sorts map entries by rendered key.
	Standard Representation = standard{}
	// Hexadecimal renders integers, floats, strings and byte slices in base 16.
	Hexadecimal Representation = radix{base: 16}
	// Binary renders integers, floats, strings and byte slices in base 2.
	Binary Representation = radix{base: 2}
	// JSON renders values as JSON.
	JSON Representation = jsonRepresentation{}
)

// Render renders value with r, falling back to Standard when r is nil.
func Render(r Representation, value any) string {
	if r == nil {
		r = Standard
	}

	return r.Render(value)
}

type standard struct{}

func (standard) Render(value any) string {
	return Truncate(renderStandard(value, 0))
}

func renderStandard(value any, depth int) string {
	if value == nil {
		return "nil"
	}

	if nilcheck.Interface(value) {
		return fmt.Sprintf("(%T)(nil)", value)
	}

	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case []byte:
		return fmt.Sprintf("%v", v)
	case error:
		return strconv.Quote(v.Error())
	case fmt.Stringer:
		return v.String()
	}

	if depth >= maxDepth {
		return fmt.Sprintf("%v", value)
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = renderElement(rv.Index(i), depth)
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Map:
		parts := make([]string, 0, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			parts = append(parts, renderElement(iter.Key(), depth)+": "+renderElement(iter.Value(), depth))
		}

		sort.Strings(parts)

		return "{" + strings.Join(parts, ", ") + "}"
	case reflect.Pointer:
		if rv.Elem().Kind() == reflect.Struct {
			return "&" + fmt.Sprintf("%+v", rv.Elem().Interface())
		}
	case reflect.Struct:
		return fmt.Sprintf("%+v", value)
	}

	return fmt.Sprintf("%v", value)
}

func renderElement(v reflect.Value, depth int) string {
	if !v.CanInterface() {
		return fmt.Sprintf("%v", v)
	}

	return renderStandard(v.Interface(), depth+1)
}

type radix struct {
	base int
}

func (r radix) Render(value any) string {
	rv := reflect.ValueOf(value)
	if value == nil {
		return Standard.Render(value)
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return r.prefix() + r.format(uint64(rv.Int()), rv.Type().Bits())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return r.prefix() + r.format(rv.Uint(), rv.Type().Bits())
	case reflect.Float32:
		return r.prefix() + r.format(uint64(math.Float32bits(float32(rv.Float()))), 32)
	case reflect.Float64:
		return r.prefix() + r.format(math.Float64bits(rv.Float()), 64)
	case reflect.String:
		return Truncate(r.bytes([]byte(rv.String())))
	case reflect.Slice:
		if b, ok := value.([]byte); ok {
			return Truncate(r.bytes(b))
		}
	}

	return Standard.Render(value)
}

func (r radix) prefix() string {
	if r.base == 16 {
		return "0x"
	}

	return "0b"
}

func (r radix) format(bits uint64, width int) string {
	if width < 64 {
		bits &= (1 << uint(width)) - 1
	}

	if r.base == 16 {
		return strings.ToUpper(strconv.FormatUint(bits, 16))
	}

	return strconv.FormatUint(bits, 2)
}

func (r radix) bytes(b []byte) string {
	if r.base == 16 {
		return "0x" + strings.ToUpper(hex.EncodeToString(b))
	}

	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("0b%08b", c)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

type jsonRepresentation struct{}

func (jsonRepresentation) Render(value any) string {
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(value)
	if err != nil {
		return Standard.Render(value)
	}

	return Truncate(out)
}
