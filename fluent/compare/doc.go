// Package compare decides equality and ordering for assertion subjects.
//
// Standard equality is go-cmp equality with unexported fields visible and
// errors compared with errors.Is. Comparator swaps in a user function.
// RecursiveConfiguration drives field-by-field comparison of structs.
package compare
