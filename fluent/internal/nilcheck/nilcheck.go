// Package nilcheck holds reflection helpers for nil and length checks on
// values whose static type is unknown.
package nilcheck

import "reflect"

// Interface reports whether value is nil, including typed-nil interfaces.
func Interface(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Len returns the length of value and whether value has a length at all.
// A nil slice or map reports length 0 and true.
func Len(value any) (int, bool) {
	if value == nil {
		return 0, false
	}

	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice, reflect.String:
		return v.Len(), true
	case reflect.Pointer:
		if !v.IsNil() && v.Elem().Kind() == reflect.Array {
			return v.Elem().Len(), true
		}
	}

	return 0, false
}
