//go:build unit

package fluent

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errFailNow = errors.New("FailNow called")
	errSkipNow = errors.New("Skip called")
)

// recordingT stands in for *testing.T. FailNow and Skip stop the calling
// function the way runtime.Goexit does; run recovers them.
type recordingT struct {
	mu      sync.Mutex
	errors  []string
	skips   []string
	failed  bool
	skipped bool
	helpers int
}

func (r *recordingT) Helper() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.helpers++
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) FailNow() {
	r.mu.Lock()
	r.failed = true
	r.mu.Unlock()

	panic(errFailNow)
}

func (r *recordingT) Skip(args ...any) {
	r.mu.Lock()
	r.skipped = true
	r.skips = append(r.skips, fmt.Sprint(args...))
	r.mu.Unlock()

	panic(errSkipNow)
}

// run calls fn and absorbs the stop raised by FailNow or Skip.
func (r *recordingT) run(fn func()) {
	defer func() {
		if rec := recover(); rec != nil && rec != errFailNow && rec != errSkipNow {
			panic(rec)
		}
	}()

	fn()
}

func (r *recordingT) joinedErrors() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return strings.Join(r.errors, "\n")
}

func recoverPanic(fn func()) (recovered any) {
	defer func() { recovered = recover() }()

	fn()

	return nil
}

// requireAssertionPanic runs fn and returns the assertion failure it panics with.
func requireAssertionPanic(t *testing.T, fn func()) *failure.AssertionError {
	t.Helper()

	recovered := recoverPanic(fn)
	require.NotNil(t, recovered, "expected an assertion failure")

	err, ok := recovered.(error)
	require.True(t, ok, "panic value %v is not an error", recovered)

	var assertion *failure.AssertionError
	require.ErrorAs(t, err, &assertion)

	return assertion
}

func requireConfigurationPanic(t *testing.T, fn func()) *failure.ConfigurationError {
	t.Helper()

	recovered := recoverPanic(fn)

	err, ok := recovered.(error)
	require.True(t, ok, "expected a configuration error, got %v", recovered)

	var cfg *failure.ConfigurationError
	require.ErrorAs(t, err, &cfg)
	assert.NotErrorIs(t, err, failure.ErrAssertionFailed)

	return cfg
}

type hobbit struct {
	Name    string
	Age     int
	Friends []string
	Home    *shire
	ring    bool
}

type shire struct {
	Village string
}
