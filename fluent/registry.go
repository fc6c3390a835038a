package fluent

import (
	"reflect"

	"github.com/LerianStudio/lib-fluent/fluent/compare"
	"github.com/LerianStudio/lib-fluent/fluent/proxy"
)

func init() {
	registerKinds(proxy.DefaultRegistry())
}

// registerKinds adds one re-dispatch entry per wrapper kind.
func registerKinds(r *proxy.Registry) {
	proxy.MustRegister[*ObjectAssert](r, single(newObjectAssert))
	proxy.MustRegister[*StringAssert](r, single(newStringAssert))
	proxy.MustRegister[*IntAssert](r, single(newIntAssert))
	proxy.MustRegister[*FloatAssert](r, single(newFloatAssert))
	proxy.MustRegister[*BoolAssert](r, single(newBoolAssert))
	proxy.MustRegister[*SliceAssert](r, single(newSliceAssert))
	proxy.MustRegister[*MapAssert](r, single(newMapAssert))
	proxy.MustRegister[*ErrorAssert](r, single(newErrorAssert))
	proxy.MustRegister[*DecimalAssert](r, single(newDecimalAssert))

	proxy.MustRegister[*SliceSizeAssert](r, withParent(newSliceSizeAssert, func(a *SliceSizeAssert) *SliceAssert { return a.parent }))
	proxy.MustRegister[*MapSizeAssert](r, withParent(newMapSizeAssert, func(a *MapSizeAssert) *MapAssert { return a.parent }))
	proxy.MustRegister[*DecimalScaleAssert](r, withParent(newDecimalScaleAssert, func(a *DecimalScaleAssert) *DecimalAssert { return a.parent }))

	proxy.MustRegister[*RecursiveComparisonAssert](r, proxy.Entry{
		ArgTypes: []reflect.Type{reflect.TypeFor[any](), reflect.TypeFor[*compare.RecursiveConfiguration]()},
		Args: func(a proxy.Assert) []any {
			rc := a.(*RecursiveComparisonAssert)
			return []any{rc.actual, rc.config}
		},
		New: func(args []any) proxy.Assert {
			return newRecursiveComparisonAssert(proxy.Arg[any](args, 0), proxy.Arg[*compare.RecursiveConfiguration](args, 1))
		},
	})
}

type subject[A any] interface {
	proxy.Assert
	Actual() A
}

// single is the entry of a wrapper rebuilt from its subject alone.
func single[W subject[A], A any](newFn func(A) W) proxy.Entry {
	return proxy.Entry{
		ArgTypes: []reflect.Type{reflect.TypeFor[A]()},
		Args: func(a proxy.Assert) []any {
			return []any{a.(W).Actual()}
		},
		New: func(args []any) proxy.Assert {
			return newFn(proxy.Arg[A](args, 0))
		},
	}
}

// withParent is the entry of a wrapper holding a back-reference to the
// wrapper it was navigated from. Its detached stand-in keeps that
// back-reference so the chain can return to the live parent.
func withParent[W subject[A], A any, P proxy.Assert](newFn func(A, P) W, parentOf func(W) P) proxy.Entry {
	return proxy.Entry{
		ArgTypes: []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[P]()},
		Args: func(a proxy.Assert) []any {
			w := a.(W)
			return []any{w.Actual(), parentOf(w)}
		},
		New: func(args []any) proxy.Assert {
			return newFn(proxy.Arg[A](args, 0), proxy.Arg[P](args, 1))
		},
		Fallback: func(parent proxy.Assert) proxy.Assert {
			p, _ := parent.(P)

			var zero A

			return newFn(zero, p)
		},
	}
}
