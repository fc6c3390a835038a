// Package description holds the user supplied text that prefixes the
// message of a failed check, as in "[user age] expected: 3 but was: 2".
package description

import "fmt"

// Description produces the text shown between brackets.
type Description interface {
	Value() string
}

type text string

func (t text) Value() string { return string(t) }

type lazy func() string

func (l lazy) Value() string {
	if l == nil {
		return ""
	}

	return l()
}

// Text returns a Description from a format and its arguments.
func Text(format string, args ...any) Description {
	if len(args) == 0 {
		return text(format)
	}

	return text(fmt.Sprintf(format, args...))
}

// Lazy defers building the text until a check fails.
func Lazy(fn func() string) Description {
	return lazy(fn)
}

// Empty is the description of a wrapper nobody described.
func Empty() Description {
	return text("")
}

// ValueOf returns d's text, or "" for a nil Description.
func ValueOf(d Description) string {
	if d == nil {
		return ""
	}

	return d.Value()
}
