//go:build unit

package proxy

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/LerianStudio/lib-fluent/fluent/description"
	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/log"
)

// probeAssert is a minimal wrapper over an int used to drive the engine.
type probeAssert struct {
	core  Core
	value int
	calls *int
}

func newProbe(value int) *probeAssert {
	return &probeAssert{value: value, calls: new(int)}
}

func (p *probeAssert) Core() *Core { return &p.core }

func (p *probeAssert) As(format string, args ...any) *probeAssert {
	p.core.Info().Describe(description.Text(format, args...))
	return p
}

func (p *probeAssert) check(method string, fn func()) *probeAssert {
	in := p.core.Interceptor()
	if in == nil {
		fn()
		return p
	}

	return in.Invoke(p, method, func() Assert {
		fn()
		return p
	}).(*probeAssert)
}

func (p *probeAssert) Equals(expected int) *probeAssert {
	return p.check("Equals", func() {
		*p.calls++
		if p.value != expected {
			failure.Raise(p.core.Info().FailWithValues(fmt.Sprintf("expected: %d\n but was: %d", expected, p.value), p.value, expected, true))
		}
	})
}

func (p *probeAssert) IsPositive() *probeAssert {
	return p.check("IsPositive", func() {
		*p.calls++
		if p.value <= 0 {
			failure.Raise(p.core.Info().Fail(fmt.Sprintf("expected %d to be positive", p.value)))
		}
	})
}

// IsSmallPositive is built on IsPositive to exercise nested interception.
func (p *probeAssert) IsSmallPositive() *probeAssert {
	return p.check("IsSmallPositive", func() {
		p.IsPositive()
		if p.value >= 10 {
			failure.Raise(p.core.Info().Fail("expected a small value"))
		}
	})
}

func (p *probeAssert) Explodes() *probeAssert {
	return p.check("Explodes", func() {
		var m map[string]int
		m["boom"] = 1
	})
}

func (p *probeAssert) Label() *labelAssert {
	body := func() Assert {
		if p.value < 0 {
			failure.Raise(p.core.Info().Fail("cannot label a negative value"))
		}

		return newLabel(p, fmt.Sprint(p.value))
	}

	in := p.core.Interceptor()
	if in == nil {
		return body().(*labelAssert)
	}

	return in.Navigate(p, "Label", body).(*labelAssert)
}

func (p *probeAssert) Leak() Assert {
	in := p.core.Interceptor()
	body := func() Assert { return &orphanAssert{} }

	if in == nil {
		return body()
	}

	return in.Navigate(p, "Leak", body)
}

type labelAssert struct {
	core   Core
	text   string
	parent *probeAssert
}

func newLabel(parent *probeAssert, text string) *labelAssert {
	l := &labelAssert{text: text, parent: parent}
	l.core.SetParent(parent)

	return l
}

func (l *labelAssert) Core() *Core { return &l.core }

func (l *labelAssert) HasText(expected string) *labelAssert {
	fn := func() {
		if l.text != expected {
			failure.Raise(l.core.Info().Fail(fmt.Sprintf("expected text %q but was %q", expected, l.text)))
		}
	}

	in := l.core.Interceptor()
	if in == nil {
		fn()
		return l
	}

	return in.Invoke(l, "HasText", func() Assert {
		fn()
		return l
	}).(*labelAssert)
}

func (l *labelAssert) Back() *probeAssert {
	in := l.core.Interceptor()
	if in == nil {
		return l.parent
	}

	return in.Navigate(l, "Back", func() Assert { return l.parent }).(*probeAssert)
}

// orphanAssert is a valid wrapper that is deliberately never registered.
type orphanAssert struct {
	core Core
}

func (o *orphanAssert) Core() *Core { return &o.core }

type notAWrapper struct{}

func newTestRegistry() *Registry {
	reg := NewRegistry()

	MustRegister[*probeAssert](reg, Entry{
		ArgTypes: []reflect.Type{reflect.TypeFor[int]()},
		Args:     func(a Assert) []any { return []any{a.(*probeAssert).value} },
		New: func(args []any) Assert {
			return newProbe(Arg[int](args, 0))
		},
	})

	MustRegister[*labelAssert](reg, Entry{
		ArgTypes: []reflect.Type{reflect.TypeFor[*probeAssert](), reflect.TypeFor[string]()},
		Args: func(a Assert) []any {
			l := a.(*labelAssert)
			return []any{l.parent, l.text}
		},
		New: func(args []any) Assert {
			return newLabel(Arg[*probeAssert](args, 0), Arg[string](args, 1))
		},
		Fallback: func(parent Assert) Assert {
			p, _ := parent.(*probeAssert)
			return newLabel(p, "")
		},
	})

	return reg
}

// recordingLogger keeps every message it is asked to log.
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingLogger) Log(_ context.Context, level log.Level, msg string, _ ...log.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, level.String()+": "+msg)
}

func (r *recordingLogger) With(...log.Field) log.Logger { return r }
func (r *recordingLogger) WithGroup(string) log.Logger  { return r }
func (r *recordingLogger) Enabled(log.Level) bool       { return true }
func (r *recordingLogger) Sync(context.Context) error   { return nil }

func (r *recordingLogger) joined() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return strings.Join(r.messages, "\n")
}
