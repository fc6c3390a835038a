package fluent

import (
	"errors"
	"strings"
	"sync"

	"github.com/LerianStudio/lib-fluent/fluent/config"
	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/ledger"
	"github.com/LerianStudio/lib-fluent/fluent/log"
	"github.com/LerianStudio/lib-fluent/fluent/presentation"
	"github.com/LerianStudio/lib-fluent/fluent/zap"
)

var (
	settingsMu    sync.RWMutex
	defaultLogger log.Logger = log.NewNop()

	bootstrapOnce sync.Once
	bootstrapErr  error
)

// bootstrap applies the environment configuration once. A broken
// environment is reported at every entry point.
func bootstrap() {
	if err := loadOnce(); err != nil {
		failure.Raise(err)
	}
}

// loadOnce reads the environment on first call and returns the outcome of
// that read on every call.
func loadOnce() error {
	bootstrapOnce.Do(func() {
		err := loadEnvironment()

		settingsMu.Lock()
		bootstrapErr = err
		settingsMu.Unlock()
	})

	settingsMu.RLock()
	defer settingsMu.RUnlock()

	return bootstrapErr
}

func loadEnvironment() error {
	cfg, err := config.Load()
	if err != nil {
		return &failure.ConfigurationError{Op: "fluent.bootstrap", Reason: "invalid environment", Err: err}
	}

	return apply(cfg)
}

// Configure applies cfg in place of the environment. Calling it before any
// entry point means the environment is never read.
func Configure(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return &failure.ConfigurationError{Op: "fluent.Configure", Reason: "invalid configuration", Err: err}
	}

	bootstrapOnce.Do(func() {})

	if err := apply(cfg); err != nil {
		return err
	}

	settingsMu.Lock()
	bootstrapErr = nil
	settingsMu.Unlock()

	return nil
}

func apply(cfg config.Config) error {
	failure.PreferSkipSignal(failure.Preference(cfg.SkipSignal))
	ledger.SetRecordLocation(cfg.RecordLocation)
	presentation.SetColorized(cfg.Color)
	presentation.SetMaxValueLength(cfg.MaxValueLength)

	if strings.TrimSpace(cfg.LogLevel) == "" {
		return nil
	}

	logger, err := zap.New(zap.Config{
		Environment: zap.Environment(cfg.Environment),
		Level:       cfg.LogLevel,
	})
	if err != nil {
		return &failure.ConfigurationError{Op: "fluent.Configure", Reason: "cannot build logger", Err: err}
	}

	SetLogger(logger)

	return nil
}

// SetLogger replaces the logger new containers report to. nil restores the
// no-op logger.
func SetLogger(l log.Logger) {
	if l == nil {
		l = log.NewNop()
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	defaultLogger = l
}

// Logger returns the logger new containers report to.
func Logger() log.Logger {
	settingsMu.RLock()
	defer settingsMu.RUnlock()

	return defaultLogger
}

// PreferSkipSignal selects the signal assumptions raise: failure.PreferAutoDetect,
// failure.PreferGoTest, failure.PreferAssertion or a registered target name.
// An unknown or unavailable name is reported when the next assumption fails.
//
// The environment is read first, so a preference set before any entry point
// survives FLUENT_SKIP_SIGNAL. A broken environment is still reported by the
// next entry point.
func PreferSkipSignal(p failure.Preference) {
	_ = loadOnce()

	failure.PreferSkipSignal(p)
}

// TestingT is the part of *testing.T containers report through.
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
	Skip(args ...any)
}

// Recover reports a panic raised by a strict wrapper through t. It must be
// deferred directly:
//
//	defer fluent.Recover(t)
//
// Assertion failures fail the test, skip signals skip it and any other panic
// is raised again.
func Recover(t TestingT) {
	r := recover()
	if r == nil {
		return
	}

	t.Helper()

	err, ok := r.(error)
	if !ok {
		panic(r)
	}

	report(t, err, func() { panic(r) })
}

// report delivers err to t, calling otherwise for anything that is neither
// an assertion failure nor a skip signal.
func report(t TestingT, err error, otherwise func()) {
	t.Helper()

	var skip *failure.AssumptionError

	switch {
	case errors.As(err, &skip):
		t.Skip(err.Error())
	case failure.IsAssertionFailure(err):
		t.Errorf("%s", err.Error())
		t.FailNow()
	default:
		otherwise()
	}
}
