package fluent

import (
	"context"

	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/ledger"
	"github.com/LerianStudio/lib-fluent/fluent/log"
	"github.com/LerianStudio/lib-fluent/fluent/policy"
	"github.com/LerianStudio/lib-fluent/fluent/proxy"
	"github.com/LerianStudio/lib-fluent/fluent/telemetry"
	"github.com/google/uuid"
)

type options struct {
	ctx      context.Context
	logger   log.Logger
	name     string
	delegate *SoftAssertions
	cache    *proxy.Cache
}

// Option configures a container.
type Option func(*options)

// WithContext sets the context whose span receives failure events.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger overrides the process-wide logger for one container.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithName replaces the generated container id used in logs and telemetry.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithDelegate makes a soft container record its failures into other's
// ledger instead of its own. Errors, Records, Err and Reset of the
// delegating container then read and clear other's ledger. Other containers
// ignore it.
func WithDelegate(other *SoftAssertions) Option {
	return func(o *options) {
		o.delegate = other
	}
}

// WithCache binds the container to a descriptor cache other than the
// process-wide one.
func WithCache(c *proxy.Cache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

func buildOptions(opts []Option) options {
	bootstrap()

	o := options{
		ctx:    context.Background(),
		logger: Logger(),
		name:   uuid.NewString(),
		cache:  proxy.DefaultCache(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o options) interceptor(p policy.Policy) *proxy.Interceptor {
	return proxy.NewInterceptor(p,
		proxy.WithCache(o.cache),
		proxy.WithLogger(o.logger),
		proxy.WithContext(o.ctx),
		proxy.WithName(o.name),
	)
}

// Assertions hands out strict wrappers that report failures through t.
type Assertions struct {
	EntryPoints
	t TestingT
}

// New returns a strict container. A failed check calls t.Errorf and
// t.FailNow; with a nil t it panics instead.
func New(t TestingT, opts ...Option) *Assertions {
	o := buildOptions(opts)

	var raise policy.Raiser
	if t != nil {
		raise = func(err error) {
			t.Helper()
			report(t, err, func() { failure.Raise(err) })
		}
	}

	return &Assertions{EntryPoints: EntryPoints{in: o.interceptor(policy.NewStrict(raise))}, t: t}
}

// Assumptions hands out wrappers whose first failed check skips the test.
type Assumptions struct {
	EntryPoints
	t  TestingT
	id string
}

// NewAssumptions returns an assumption container. The failure is converted
// into the skip signal selected by PreferSkipSignal. When t is set, a go test
// skip signal calls t.Skip and an assertion failure substitute calls t.Errorf
// and t.FailNow; other signals are raised as panics.
func NewAssumptions(t TestingT, opts ...Option) *Assumptions {
	o := buildOptions(opts)

	var raise policy.Raiser
	if t != nil {
		raise = func(err error) {
			t.Helper()
			report(t, err, func() { failure.Raise(err) })
		}
	}

	return &Assumptions{EntryPoints: EntryPoints{in: o.interceptor(policy.NewConvertToSkip(raise))}, t: t, id: o.name}
}

// ID returns the container id.
func (a *Assumptions) ID() string { return a.id }

// SoftAssertions hands out wrappers whose failures are recorded and
// reported together by AssertAll.
type SoftAssertions struct {
	EntryPoints
	t      TestingT
	id     string
	ctx    context.Context
	ledger *ledger.Ledger
}

// NewSoft returns a soft container. t may be nil, in which case AssertAll
// panics with the combined failure.
func NewSoft(t TestingT, opts ...Option) *SoftAssertions {
	o := buildOptions(opts)

	l := ledger.New()
	if o.delegate != nil {
		if err := l.DelegateTo(o.delegate.ledger); err != nil {
			failure.Raise(err)
		}
	}

	return &SoftAssertions{
		EntryPoints: EntryPoints{in: o.interceptor(policy.NewCollect(l))},
		t:           t,
		id:          o.name,
		ctx:         o.ctx,
		ledger:      l,
	}
}

// ID returns the container id.
func (s *SoftAssertions) ID() string { return s.id }

// AssertAll reports every recorded failure as one. It does nothing when no
// check failed. The records are kept; call Reset to drop them.
func (s *SoftAssertions) AssertAll() {
	if s.t != nil {
		s.t.Helper()
	}

	err := s.Err()
	if err == nil {
		return
	}

	telemetry.RecordFinalization(s.ctx, s.id, err)

	if s.t == nil {
		failure.Raise(err)
	}

	s.t.Errorf("%s", err.Error())
	s.t.FailNow()
}

// Err returns nil when no check failed, or one *failure.MultipleFailuresError
// listing every failure in the order the checks ran.
func (s *SoftAssertions) Err() error {
	return s.ledger.Finalize()
}

// WasSuccess reports whether the last check passed.
func (s *SoftAssertions) WasSuccess() bool {
	return s.ledger.WasSuccess()
}

// Errors returns the recorded failures in order.
func (s *SoftAssertions) Errors() []error {
	return s.ledger.Errors()
}

// Records returns the recorded failures with their metadata.
func (s *SoftAssertions) Records() []ledger.Record {
	return s.ledger.Records()
}

// Reset drops every recorded failure.
func (s *SoftAssertions) Reset() {
	s.ledger.Reset()
}

// Fail records a failure without running a check.
func (s *SoftAssertions) Fail(format string, args ...any) {
	s.in.Guard("Fail", func() {
		failure.Fail(format, args...)
	})
}

// Check runs fn and records the assertion failure it raises, if any. It lets
// strict assertions, such as those of helper functions, join the container.
func (s *SoftAssertions) Check(fn func()) {
	if fn == nil {
		failure.Raise(failure.Misconfigured("SoftAssertions.Check", "check is nil"))
	}

	s.in.Guard("Check", fn)
}

// AssertAlso copies the failures recorded by other into this container,
// after its own. other is left untouched. It does nothing when both
// containers record into the same ledger.
func (s *SoftAssertions) AssertAlso(other *SoftAssertions) {
	if other == nil {
		failure.Raise(failure.Misconfigured("SoftAssertions.AssertAlso", "other container is nil"))
	}

	if other.ledger.Target() == s.ledger.Target() {
		return
	}

	s.ledger.Merge(other.ledger.Records())
}

// OnFailureCollected registers fn to be called after each recorded failure.
func (s *SoftAssertions) OnFailureCollected(fn func(ledger.Record)) {
	s.ledger.OnCollected(fn)
}

// AssertSoftly runs fn against a fresh soft container and calls AssertAll.
func AssertSoftly(t TestingT, fn func(s *SoftAssertions), opts ...Option) {
	if t != nil {
		t.Helper()
	}

	s := NewSoft(t, opts...)
	fn(s)
	s.AssertAll()
}
