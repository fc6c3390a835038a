//go:build unit

package fluent

import (
	"sync"
	"testing"

	"github.com/LerianStudio/lib-fluent/fluent/config"
	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/ledger"
	"github.com/LerianStudio/lib-fluent/fluent/log"
	"github.com/LerianStudio/lib-fluent/fluent/presentation"
	"github.com/LerianStudio/lib-fluent/fluent/zap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tests in this file change process-wide settings and do not run in parallel.

func restoreDefaults(t *testing.T) {
	t.Helper()

	t.Cleanup(func() {
		require.NoError(t, Configure(config.Default()))
		SetLogger(nil)
	})
}

// forgetEnvironment returns the package to the state of a process in which
// no entry point has run yet.
func forgetEnvironment(t *testing.T) {
	t.Helper()

	settingsMu.Lock()
	bootstrapOnce = sync.Once{}
	bootstrapErr = nil
	settingsMu.Unlock()

	failure.PreferSkipSignal(failure.PreferAutoDetect)
	restoreDefaults(t)
}

func TestConfigureAppliesSettings(t *testing.T) {
	restoreDefaults(t)

	cfg := config.Default()
	cfg.RecordLocation = false
	cfg.MaxValueLength = 8
	cfg.Color = true
	cfg.LogLevel = "debug"

	require.NoError(t, Configure(cfg))

	assert.False(t, ledger.RecordsLocation())
	assert.Equal(t, 8, presentation.MaxValueLength())
	assert.True(t, presentation.Colorized())
	assert.IsType(t, &zap.Logger{}, Logger())

	soft := NewSoft(nil)
	soft.ThatString("a rather long hobbit name").IsEmpty()

	records := soft.Records()
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Location)
	assert.Contains(t, records[0].Message, "(truncated")
}

func TestConfigureRejectsInvalidSettings(t *testing.T) {
	restoreDefaults(t)

	cfg := config.Default()
	cfg.MaxValueLength = -1

	err := Configure(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrConfiguration)

	cfg = config.Default()
	cfg.LogLevel = "debug"
	cfg.Environment = "moon"

	err = Configure(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrConfiguration)
}

func TestPreferSkipSignal(t *testing.T) {
	restoreDefaults(t)

	PreferSkipSignal(failure.PreferAssertion)

	err := requireAssertionPanic(t, func() {
		NewAssumptions(nil).ThatInt(1).IsEqualTo(2)
	})
	assert.Equal(t, "expected: 2\n but was: 1", err.Message)

	PreferSkipSignal("no-such-runner")

	requireConfigurationPanic(t, func() {
		NewAssumptions(nil).ThatInt(1).IsEqualTo(2)
	})

	PreferSkipSignal(failure.PreferAutoDetect)
	assert.Equal(t, failure.PreferAutoDetect, failure.SkipPreference())
}

func TestPreferSkipSignalBeforeFirstEntryPoint(t *testing.T) {
	forgetEnvironment(t)
	t.Setenv("FLUENT_SKIP_SIGNAL", string(failure.PreferGoTest))

	PreferSkipSignal(failure.PreferAssertion)

	err := requireAssertionPanic(t, func() {
		NewAssumptions(nil).ThatInt(1).IsEqualTo(2)
	})
	assert.Equal(t, "expected: 2\n but was: 1", err.Message)
	assert.Equal(t, failure.PreferAssertion, failure.SkipPreference())
}

func TestAssumptionSubstituteFailsThroughRunner(t *testing.T) {
	restoreDefaults(t)

	cfg := config.Default()
	cfg.SkipSignal = string(failure.PreferAssertion)
	require.NoError(t, Configure(cfg))

	rt := &recordingT{}

	assert.NotPanics(t, func() {
		rt.run(func() {
			NewAssumptions(rt).ThatInt(1).IsEqualTo(2)
		})
	})

	assert.True(t, rt.failed)
	assert.False(t, rt.skipped)
	assert.Contains(t, rt.joinedErrors(), "expected: 2\n but was: 1")
}

func TestSetLogger(t *testing.T) {
	restoreDefaults(t)

	logger := &recordingLogger{}
	SetLogger(logger)
	assert.Same(t, logger, Logger())

	NewSoft(nil).ThatBool(false).IsTrue()
	assert.Contains(t, logger.messages(), "assertion failure collected")

	SetLogger(nil)
	assert.IsType(t, log.NewNop(), Logger())
}
