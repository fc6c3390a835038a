package proxy

import (
	"reflect"

	"github.com/LerianStudio/lib-fluent/fluent/info"
)

// Assert is implemented by every wrapper.
type Assert interface {
	Core() *Core
}

var assertType = reflect.TypeFor[Assert]()

// Core is the engine state embedded in every wrapper.
type Core struct {
	info        *info.Info
	interceptor *Interceptor
	augmented   *AugmentedType
	parent      Assert
	depth       int
}

// Info returns the display state, creating the default one on first use.
func (c *Core) Info() *info.Info {
	if c.info == nil {
		c.info = info.New()
	}

	return c.info
}

// Interceptor returns the interceptor the wrapper is bound to, or nil for a
// strict wrapper.
func (c *Core) Interceptor() *Interceptor {
	return c.interceptor
}

// Augmented returns the descriptor of the wrapper's type, or nil when unbound.
func (c *Core) Augmented() *AugmentedType {
	return c.augmented
}

// Detached reports whether the wrapper stands in for a navigation that failed
// under a collecting policy. Checks on a detached wrapper do nothing.
func (c *Core) Detached() bool {
	return c.interceptor != nil && c.interceptor.detached
}

// SetParent records the wrapper a navigation back-reference returns to.
func (c *Core) SetParent(parent Assert) {
	c.parent = parent
}

// Parent returns the back-reference set with SetParent.
func (c *Core) Parent() Assert {
	return c.parent
}

func (c *Core) bind(in *Interceptor, aug *AugmentedType) {
	c.interceptor = in
	c.augmented = aug
}

// Transplant copies the display state of from onto to.
func Transplant(to, from Assert) {
	if to == nil || from == nil {
		return
	}

	to.Core().Info().CopyFrom(from.Core().Info())
}

// Arg returns args[i] as T, or the zero T when it is missing or of another
// type. Registry constructors use it to tolerate zero-valued arguments.
func Arg[T any](args []any, i int) T {
	var zero T

	if i < 0 || i >= len(args) {
		return zero
	}

	v, ok := args[i].(T)
	if !ok {
		return zero
	}

	return v
}

func isNilAssert(a Assert) bool {
	if a == nil {
		return true
	}

	v := reflect.ValueOf(a)

	return v.Kind() == reflect.Pointer && v.IsNil()
}
