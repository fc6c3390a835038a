package proxy

import (
	"context"
	"reflect"
	"sync"

	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/info"
	"github.com/LerianStudio/lib-fluent/fluent/log"
	"github.com/LerianStudio/lib-fluent/fluent/policy"
	"github.com/LerianStudio/lib-fluent/fluent/telemetry"
)

// Interceptor applies one policy to every wrapper bound to it.
type Interceptor struct {
	policy   policy.Policy
	cache    *Cache
	logger   log.Logger
	ctx      context.Context
	name     string
	detached bool

	detachOnce sync.Once
	detachedIn *Interceptor
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithCache replaces the process-wide cache.
func WithCache(c *Cache) Option {
	return func(in *Interceptor) {
		if c != nil {
			in.cache = c
		}
	}
}

// WithLogger sets the logger failures and faults are reported to.
func WithLogger(l log.Logger) Option {
	return func(in *Interceptor) {
		if l != nil {
			in.logger = l
		}
	}
}

// WithContext sets the context whose span receives failure events.
func WithContext(ctx context.Context) Option {
	return func(in *Interceptor) {
		if ctx != nil {
			in.ctx = ctx
		}
	}
}

// WithName labels logs and telemetry with name.
func WithName(name string) Option {
	return func(in *Interceptor) {
		in.name = name
	}
}

// NewInterceptor returns an interceptor applying p.
func NewInterceptor(p policy.Policy, opts ...Option) *Interceptor {
	if p == nil {
		p = policy.NewStrict(nil)
	}

	in := &Interceptor{
		policy: p,
		cache:  DefaultCache(),
		logger: log.NewNop(),
		ctx:    context.Background(),
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Policy returns the applied policy.
func (in *Interceptor) Policy() policy.Policy { return in.policy }

// Cache returns the descriptor cache.
func (in *Interceptor) Cache() *Cache { return in.cache }

// Name returns the label set with WithName.
func (in *Interceptor) Name() string { return in.name }

// Context returns the context set with WithContext.
func (in *Interceptor) Context() context.Context { return in.ctx }

// Bind returns a copy of plain bound to in. A nil interceptor returns plain.
func Bind[A Assert](in *Interceptor, plain A) A {
	if in == nil {
		return plain
	}

	bound, _ := in.Proxy(plain).(A)

	return bound
}

// Proxy rebuilds plain under in through the registry, keeping its display state.
func (in *Interceptor) Proxy(plain Assert) Assert {
	if isNilAssert(plain) {
		failure.Raise(failure.Misconfigured("Interceptor.Proxy", "cannot bind a nil wrapper"))
	}

	entry := in.lookup(reflect.TypeOf(plain))

	return in.construct(entry, entry.Args(plain), plain.Core().Info())
}

// Invoke runs the check body of method on self and applies the policy.
// body returns the wrapper the method returns, normally self.
func (in *Interceptor) Invoke(self Assert, method string, body func() Assert) Assert {
	return in.intercept(self, method, body, false)
}

// Navigate is Invoke for methods that return a wrapper over a different
// subject. When such a method fails under a collecting policy the caller
// receives a detached wrapper of the declared result type.
func (in *Interceptor) Navigate(self Assert, method string, body func() Assert) Assert {
	return in.intercept(self, method, body, true)
}

// Guard runs fn outside any wrapper and applies the policy to how it ended.
func (in *Interceptor) Guard(method string, fn func()) {
	if in.detached {
		return
	}

	outcome, recovered, err := failure.Capture(fn)

	switch outcome {
	case failure.Success:
		in.policy.Succeeded()
	case failure.Failure:
		in.fail(method, err)
	default:
		in.fault(method, err)
		panic(recovered)
	}
}

func (in *Interceptor) intercept(self Assert, method string, body func() Assert, navigation bool) Assert {
	core := self.Core()
	if core.depth > 0 {
		return body()
	}

	m := in.method(core, self, method)
	if !m.Intercepted {
		return body()
	}

	if in.detached {
		return in.skip(self, m, navigation)
	}

	result, outcome, recovered, err := in.run(core, body)

	switch outcome {
	case failure.Success:
		in.policy.Succeeded()

		return in.redispatch(self, m, result)
	case failure.Failure:
		in.fail(m.Name, err)

		return in.placeholder(self, m, navigation)
	default:
		in.fault(m.Name, err)
		panic(recovered)
	}
}

func (in *Interceptor) run(core *Core, body func() Assert) (result Assert, outcome failure.Outcome, recovered any, err error) {
	core.depth++
	defer func() { core.depth-- }()

	outcome, recovered, err = failure.Capture(func() {
		result = body()
	})

	return result, outcome, recovered, err
}

func (in *Interceptor) method(core *Core, self Assert, name string) Method {
	aug := core.augmented
	if aug == nil {
		var err error

		aug, err = in.cache.Augment(reflect.TypeOf(self))
		if err != nil {
			failure.Raise(err)
		}

		core.augmented = aug
	}

	m, ok := aug.Method(name)
	if !ok {
		failure.Raise(failure.Misconfigured("Interceptor.Invoke", "%v has no method %s", aug.Base(), name))
	}

	return m
}

func (in *Interceptor) redispatch(self Assert, m Method, result Assert) Assert {
	if isNilAssert(result) {
		if m.Navigates {
			failure.Raise(failure.Misconfigured("Interceptor.Invoke", "%v.%s returned a nil wrapper", reflect.TypeOf(self), m.Name))
		}

		return self
	}

	if result == self || result.Core().interceptor == in {
		return result
	}

	entry := in.lookup(reflect.TypeOf(result))

	return in.construct(entry, entry.Args(result), self.Core().Info())
}

func (in *Interceptor) placeholder(self Assert, m Method, navigation bool) Assert {
	if !navigation || m.Result == nil || !m.Result.Implements(assertType) {
		return self
	}

	return in.fallback(self, m.Result)
}

// skip handles a call on a detached wrapper: checks do nothing, navigations
// return the live parent when they lead back to it and another detached
// wrapper otherwise.
func (in *Interceptor) skip(self Assert, m Method, navigation bool) Assert {
	if !navigation || m.Result == nil || !m.Result.Implements(assertType) {
		return self
	}

	if parent := self.Core().parent; parent != nil && reflect.TypeOf(parent) == m.Result && !parent.Core().Detached() {
		return parent
	}

	if m.Result == reflect.TypeOf(self) {
		return self
	}

	return in.fallback(self, m.Result)
}

func (in *Interceptor) fallback(self Assert, result reflect.Type) Assert {
	entry := in.lookup(result)

	aug, err := in.cache.Augment(entry.Base)
	if err != nil {
		failure.Raise(err)
	}

	var inst Assert
	if entry.Fallback != nil {
		inst = entry.Fallback(self)
	} else {
		inst = in.cache.Registry().Zero(entry)
	}

	inst.Core().bind(in.detachedView(), aug)
	inst.Core().Info().CopyFrom(self.Core().Info())

	return inst
}

func (in *Interceptor) construct(entry Entry, args []any, state *info.Info) Assert {
	aug, err := in.cache.Augment(entry.Base)
	if err != nil {
		failure.Raise(err)
	}

	inst, err := in.cache.Registry().Build(entry, args)
	if err != nil {
		failure.Raise(err)
	}

	inst.Core().bind(in, aug)
	inst.Core().Info().CopyFrom(state)

	return inst
}

func (in *Interceptor) lookup(t reflect.Type) Entry {
	entry, err := in.cache.Registry().Lookup(t)
	if err != nil {
		failure.Raise(err)
	}

	return entry
}

func (in *Interceptor) detachedView() *Interceptor {
	if in.detached {
		return in
	}

	in.detachOnce.Do(func() {
		in.detachedIn = &Interceptor{
			policy:   in.policy,
			cache:    in.cache,
			logger:   in.logger,
			ctx:      in.ctx,
			name:     in.name,
			detached: true,
		}
	})

	return in.detachedIn
}

func (in *Interceptor) fail(method string, err error) {
	mode := in.policy.Mode()

	disposition := telemetry.Raised

	switch mode {
	case policy.ModeCollect:
		disposition = telemetry.Collected
	case policy.ModeConvertToSkip:
		disposition = telemetry.Skipped
	}

	in.logger.Log(in.ctx, log.LevelDebug, "assertion failure "+string(disposition),
		log.String("container_id", in.name),
		log.String("mode", mode.String()),
		log.String("method", method),
		log.Err(err),
	)

	telemetry.RecordFailure(in.ctx, telemetry.Event{
		Mode:        mode.String(),
		Container:   in.name,
		Method:      method,
		Message:     err.Error(),
		Disposition: disposition,
	})

	in.policy.Failed(method, err)
}

func (in *Interceptor) fault(method string, err error) {
	if !failure.IsAssertionFailure(err) && err != nil {
		in.logger.Log(in.ctx, log.LevelWarn, "assertion raised a non-assertion fault",
			log.String("container_id", in.name),
			log.String("mode", in.policy.Mode().String()),
			log.String("method", method),
			log.Err(err),
		)
	}
}
