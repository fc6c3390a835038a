package failure

import (
	"strings"
	"sync"
	"testing"
)

// Preference names the skip target assumptions convert failures into.
type Preference string

const (
	// PreferAutoDetect picks the first available registered target, then the
	// go test target, then the generic assertion failure.
	PreferAutoDetect Preference = "auto"
	// PreferGoTest converts to *AssumptionError, understood by Recover and by
	// containers bound to a *testing.T.
	PreferGoTest Preference = "go-test"
	// PreferAssertion converts to a plain *AssertionError.
	PreferAssertion Preference = "assertion"
)

// SkipTarget is one entry of the skip-signal catalog.
type SkipTarget struct {
	Name Preference
	// Available reports whether the runner that understands this signal is
	// present in the process.
	Available func() bool
	// New builds the signal from the failure message and the failure itself.
	New func(message string, cause error) error
}

var goTestTarget = SkipTarget{
	Name:      PreferGoTest,
	Available: testing.Testing,
	New: func(message string, cause error) error {
		return &AssumptionError{Target: string(PreferGoTest), Message: message, Cause: cause}
	},
}

var assertionTarget = SkipTarget{
	Name:      PreferAssertion,
	Available: func() bool { return true },
	New: func(message string, _ error) error {
		return &AssertionError{Message: message}
	},
}

type skipCatalog struct {
	mu         sync.RWMutex
	registered []SkipTarget
	preference Preference
	resolved   *SkipTarget
}

var catalog = &skipCatalog{preference: PreferAutoDetect}

// RegisterSkipTarget adds a target to the catalog. Registered targets are
// probed before the builtin ones during auto-detection, in registration
// order. Registering resets the memoized resolution.
func RegisterSkipTarget(target SkipTarget) error {
	name := Preference(strings.TrimSpace(string(target.Name)))

	switch {
	case name == "" || name == PreferAutoDetect:
		return Misconfigured("RegisterSkipTarget", "invalid target name %q", target.Name)
	case target.New == nil:
		return Misconfigured("RegisterSkipTarget", "target %q has no signal constructor", name)
	case name == PreferGoTest || name == PreferAssertion:
		return Misconfigured("RegisterSkipTarget", "target %q is builtin", name)
	}

	if target.Available == nil {
		target.Available = func() bool { return true }
	}

	target.Name = name

	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	for _, existing := range catalog.registered {
		if existing.Name == name {
			return Misconfigured("RegisterSkipTarget", "target %q already registered", name)
		}
	}

	catalog.registered = append(catalog.registered, target)
	catalog.resolved = nil

	return nil
}

// PreferSkipSignal sets the preferred target. It should be called before the
// first assumption runs; calling it later drops the memoized resolution so the
// next assumption resolves again.
func PreferSkipSignal(preference Preference) {
	preference = Preference(strings.ToLower(strings.TrimSpace(string(preference))))
	if preference == "" {
		preference = PreferAutoDetect
	}

	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	catalog.preference = preference
	catalog.resolved = nil
}

// SkipPreference returns the current preference.
func SkipPreference() Preference {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	return catalog.preference
}

// SkipSignal returns the resolved target, resolving it on first use. An
// explicit preference that names an unknown or unavailable target panics with
// a *ConfigurationError.
func SkipSignal() SkipTarget {
	catalog.mu.RLock()
	resolved := catalog.resolved
	catalog.mu.RUnlock()

	if resolved != nil {
		return *resolved
	}

	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	if catalog.resolved == nil {
		target, err := catalog.resolve()
		if err != nil {
			Raise(err)
		}

		catalog.resolved = &target
	}

	return *catalog.resolved
}

// NewSkipSignal converts the failure cause into the resolved skip signal.
func NewSkipSignal(cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}

	return SkipSignal().New(message, cause)
}

// ResetSkipSignals restores the default catalog: no registered targets,
// auto-detection, nothing memoized.
func ResetSkipSignals() {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	catalog.registered = nil
	catalog.preference = PreferAutoDetect
	catalog.resolved = nil
}

// resolve must be called with mu held.
func (c *skipCatalog) resolve() (SkipTarget, error) {
	candidates := make([]SkipTarget, 0, len(c.registered)+2)
	candidates = append(candidates, c.registered...)
	candidates = append(candidates, goTestTarget, assertionTarget)

	if c.preference == PreferAutoDetect {
		for _, target := range candidates {
			if target.Available() {
				return target, nil
			}
		}

		return assertionTarget, nil
	}

	for _, target := range candidates {
		if target.Name != c.preference {
			continue
		}

		if !target.Available() {
			return SkipTarget{}, Misconfigured("SkipSignal", "preferred skip target %q is not available", c.preference)
		}

		return target, nil
	}

	return SkipTarget{}, Misconfigured("SkipSignal", "unknown skip target %q", c.preference)
}
