package proxy

import (
	"reflect"
	"sort"
	"sync"

	"github.com/LerianStudio/lib-fluent/fluent/failure"
)

// Entry is the recipe that rebuilds a wrapper of one concrete type.
type Entry struct {
	// Base is the type to build; it defaults to the concrete type.
	Base reflect.Type
	// ArgTypes are the constructor parameter types, in order.
	ArgTypes []reflect.Type
	// Args extracts the constructor arguments from an instance.
	Args func(a Assert) []any
	// New builds a fresh, unbound instance from arguments.
	New func(args []any) Assert
	// Fallback builds the detached stand-in returned when a navigation to
	// this type fails under a collecting policy. parent is the wrapper the
	// navigation was called on. When nil, New is called with zero arguments.
	Fallback func(parent Assert) Assert
}

// Registry is the result re-dispatch table.
type Registry struct {
	mu      sync.RWMutex
	entries map[reflect.Type]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[reflect.Type]Entry)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry wrapper packages register into.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds the recipe for concrete.
func (r *Registry) Register(concrete reflect.Type, e Entry) error {
	const op = "Registry.Register"

	if err := checkWrapperType(op, concrete); err != nil {
		return err
	}

	if e.New == nil || e.Args == nil {
		return failure.Misconfigured(op, "%s: constructor and argument extractor are required", concrete)
	}

	if e.Base == nil {
		e.Base = concrete
	}

	if err := checkWrapperType(op, e.Base); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[concrete]; exists {
		return failure.Misconfigured(op, "%s is already registered", concrete)
	}

	r.entries[concrete] = e

	return nil
}

// Register adds the recipe for A to r.
func Register[A Assert](r *Registry, e Entry) error {
	return r.Register(reflect.TypeFor[A](), e)
}

// MustRegister is Register that panics on error, for use in init.
func MustRegister[A Assert](r *Registry, e Entry) {
	if err := Register[A](r, e); err != nil {
		failure.Raise(err)
	}
}

// Lookup returns the recipe for t.
func (r *Registry) Lookup(t reflect.Type) (Entry, error) {
	r.mu.RLock()
	e, ok := r.entries[t]
	r.mu.RUnlock()

	if !ok {
		return Entry{}, failure.Misconfigured("Registry.Lookup", "no re-dispatch entry for wrapper type %v", t)
	}

	return e, nil
}

// Types returns every registered concrete type, sorted by name.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reflect.Type, 0, len(r.entries))
	for t := range r.entries {
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })

	return out
}

// Build checks args against e.ArgTypes and calls e.New.
func (r *Registry) Build(e Entry, args []any) (Assert, error) {
	const op = "Registry.Build"

	if len(args) != len(e.ArgTypes) {
		return nil, failure.Misconfigured(op, "%v expects %d constructor arguments, got %d", e.Base, len(e.ArgTypes), len(args))
	}

	for i, want := range e.ArgTypes {
		if args[i] == nil {
			if !nillable(want) {
				return nil, failure.Misconfigured(op, "%v argument %d: nil is not a %v", e.Base, i, want)
			}

			continue
		}

		if got := reflect.TypeOf(args[i]); !got.AssignableTo(want) {
			return nil, failure.Misconfigured(op, "%v argument %d: %v is not assignable to %v", e.Base, i, got, want)
		}
	}

	inst := e.New(args)
	if isNilAssert(inst) {
		return nil, failure.Misconfigured(op, "%v constructor returned nil", e.Base)
	}

	return inst, nil
}

// Zero builds e from zero-valued arguments.
func (r *Registry) Zero(e Entry) Assert {
	args := make([]any, len(e.ArgTypes))
	for i, t := range e.ArgTypes {
		args[i] = reflect.Zero(t).Interface()
	}

	return e.New(args)
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}

func checkWrapperType(op string, t reflect.Type) error {
	switch {
	case t == nil:
		return failure.Misconfigured(op, "wrapper type is nil")
	case t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct:
		return failure.Misconfigured(op, "%v is not a pointer to a struct", t)
	case !t.Implements(assertType):
		return failure.Misconfigured(op, "%v does not implement proxy.Assert", t)
	default:
		return nil
	}
}
