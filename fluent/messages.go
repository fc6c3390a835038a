package fluent

import (
	"fmt"
	"reflect"

	"github.com/LerianStudio/lib-fluent/fluent/compare"
	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/info"
	"github.com/LerianStudio/lib-fluent/fluent/presentation"
	gocmp "github.com/google/go-cmp/cmp"
)

func shouldBeEqual(inf *info.Info, actual, expected any, opts ...gocmp.Option) *failure.AssertionError {
	msg := fmt.Sprintf("expected: %s\n but was: %s", inf.Render(expected), inf.Render(actual))

	strategy := inf.Comparison()

	switch {
	case !compare.IsStandard(strategy):
		msg += "\nwhen comparing values using " + strategy.String()
	case structured(actual) && structured(expected):
		if len(opts) == 0 {
			opts = compare.EqualityOptions()
		}

		if d := diff(expected, actual, opts); d != "" {
			msg += "\ndiff (-expected +actual):\n" + d
		}
	}

	return inf.FailWithValues(msg, actual, expected, true)
}

func diff(expected, actual any, opts []gocmp.Option) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()

	return presentation.Diff(expected, actual, opts...)
}

func structured(v any) bool {
	if v == nil {
		return false
	}

	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}
