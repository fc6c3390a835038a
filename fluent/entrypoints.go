package fluent

import (
	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/proxy"
	"github.com/shopspring/decimal"
)

// EntryPoints creates wrappers bound to one interceptor. The zero value
// creates strict, unbound wrappers whose failures panic.
type EntryPoints struct {
	in *proxy.Interceptor
}

// That returns a wrapper over any value.
func (e EntryPoints) That(actual any) *ObjectAssert {
	return proxy.Bind(e.in, newObjectAssert(actual))
}

// ThatString returns a wrapper over a string.
func (e EntryPoints) ThatString(actual string) *StringAssert {
	return proxy.Bind(e.in, newStringAssert(actual))
}

// ThatInt returns a wrapper over an int.
func (e EntryPoints) ThatInt(actual int) *IntAssert {
	return proxy.Bind(e.in, newIntAssert(int64(actual)))
}

// ThatInt64 returns a wrapper over an int64.
func (e EntryPoints) ThatInt64(actual int64) *IntAssert {
	return proxy.Bind(e.in, newIntAssert(actual))
}

// ThatFloat returns a wrapper over a float64.
func (e EntryPoints) ThatFloat(actual float64) *FloatAssert {
	return proxy.Bind(e.in, newFloatAssert(actual))
}

// ThatBool returns a wrapper over a bool.
func (e EntryPoints) ThatBool(actual bool) *BoolAssert {
	return proxy.Bind(e.in, newBoolAssert(actual))
}

// ThatSlice returns a wrapper over the elements of a slice or array. Any
// other argument is a configuration error.
func (e EntryPoints) ThatSlice(actual any) *SliceAssert {
	elems, ok := toSlice(actual)
	if !ok && actual != nil {
		failure.Raise(failure.Misconfigured("ThatSlice", "%T is not a slice or an array", actual))
	}

	return proxy.Bind(e.in, newSliceAssert(elems))
}

// ThatMap returns a wrapper over a map. Any other argument is a
// configuration error.
func (e EntryPoints) ThatMap(actual any) *MapAssert {
	m, ok := toMap(actual)
	if !ok && actual != nil {
		failure.Raise(failure.Misconfigured("ThatMap", "%T is not a map", actual))
	}

	return proxy.Bind(e.in, newMapAssert(m))
}

// ThatError returns a wrapper over an error.
func (e EntryPoints) ThatError(actual error) *ErrorAssert {
	return proxy.Bind(e.in, newErrorAssert(actual))
}

// ThatDecimal returns a wrapper over a decimal.
func (e EntryPoints) ThatDecimal(actual decimal.Decimal) *DecimalAssert {
	return proxy.Bind(e.in, newDecimalAssert(actual))
}

func strict() EntryPoints {
	bootstrap()

	return EntryPoints{}
}

// That returns a strict wrapper over any value.
func That(actual any) *ObjectAssert { return strict().That(actual) }

// ThatString returns a strict wrapper over a string.
func ThatString(actual string) *StringAssert { return strict().ThatString(actual) }

// ThatInt returns a strict wrapper over an int.
func ThatInt(actual int) *IntAssert { return strict().ThatInt(actual) }

// ThatInt64 returns a strict wrapper over an int64.
func ThatInt64(actual int64) *IntAssert { return strict().ThatInt64(actual) }

// ThatFloat returns a strict wrapper over a float64.
func ThatFloat(actual float64) *FloatAssert { return strict().ThatFloat(actual) }

// ThatBool returns a strict wrapper over a bool.
func ThatBool(actual bool) *BoolAssert { return strict().ThatBool(actual) }

// ThatSlice returns a strict wrapper over the elements of a slice or array.
func ThatSlice(actual any) *SliceAssert { return strict().ThatSlice(actual) }

// ThatMap returns a strict wrapper over a map.
func ThatMap(actual any) *MapAssert { return strict().ThatMap(actual) }

// ThatError returns a strict wrapper over an error.
func ThatError(actual error) *ErrorAssert { return strict().ThatError(actual) }

// ThatDecimal returns a strict wrapper over a decimal.
func ThatDecimal(actual decimal.Decimal) *DecimalAssert { return strict().ThatDecimal(actual) }
