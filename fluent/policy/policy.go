// Package policy decides what happens to an assertion failure once an
// interceptor has caught it.
package policy

import (
	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/ledger"
)

// Mode identifies a policy.
type Mode int

const (
	// ModeStrict raises the failure unchanged.
	ModeStrict Mode = iota
	// ModeCollect records the failure and lets the chain continue.
	ModeCollect
	// ModeConvertToSkip raises the resolved skip signal instead of the failure.
	ModeConvertToSkip
)

// String returns the mode name used in logs and metric labels.
func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeCollect:
		return "soft"
	case ModeConvertToSkip:
		return "assumption"
	default:
		return "unknown"
	}
}

// Raiser delivers a failure or signal to whoever runs the test. It is not
// expected to return.
type Raiser func(err error)

// Policy reacts to the outcome of one intercepted check.
type Policy interface {
	Mode() Mode
	Succeeded()
	// Failed handles an assertion failure raised by method. Only the collect
	// policy returns.
	Failed(method string, err error)
}

// Strict re-raises failures.
type Strict struct {
	raise Raiser
}

// NewStrict returns a strict policy. A nil raise panics with the failure.
func NewStrict(raise Raiser) *Strict {
	if raise == nil {
		raise = failure.Raise
	}

	return &Strict{raise: raise}
}

// Mode returns ModeStrict.
func (p *Strict) Mode() Mode { return ModeStrict }

// Succeeded does nothing.
func (p *Strict) Succeeded() {}

// Failed raises err.
func (p *Strict) Failed(_ string, err error) {
	p.raise(err)
}

// Collect appends failures to a ledger.
type Collect struct {
	ledger *ledger.Ledger
}

// NewCollect returns a collecting policy over l, creating a ledger when l is nil.
func NewCollect(l *ledger.Ledger) *Collect {
	if l == nil {
		l = ledger.New()
	}

	return &Collect{ledger: l}
}

// Mode returns ModeCollect.
func (p *Collect) Mode() Mode { return ModeCollect }

// Ledger returns the ledger failures are appended to.
func (p *Collect) Ledger() *ledger.Ledger { return p.ledger }

// Succeeded marks the last check as passed.
func (p *Collect) Succeeded() {
	p.ledger.Succeeded()
}

// Failed records err.
func (p *Collect) Failed(method string, err error) {
	p.ledger.Append(method, err)
}

// ConvertToSkip turns the first failure into a skip signal.
type ConvertToSkip struct {
	raise   Raiser
	convert func(error) error
}

// NewConvertToSkip returns an assumption policy converting with the
// process-wide skip-signal catalog. A nil raise panics with the signal.
func NewConvertToSkip(raise Raiser) *ConvertToSkip {
	if raise == nil {
		raise = failure.Raise
	}

	return &ConvertToSkip{raise: raise, convert: failure.NewSkipSignal}
}

// Mode returns ModeConvertToSkip.
func (p *ConvertToSkip) Mode() Mode { return ModeConvertToSkip }

// Succeeded does nothing.
func (p *ConvertToSkip) Succeeded() {}

// Failed raises the skip signal converted from err.
func (p *ConvertToSkip) Failed(_ string, err error) {
	p.raise(p.convert(err))
}
