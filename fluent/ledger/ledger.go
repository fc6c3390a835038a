package ledger

import (
	"errors"
	"sync"

	"github.com/LerianStudio/lib-fluent/fluent/failure"
)

// Record is one collected failure. Records are immutable once appended.
type Record struct {
	// Seq is the 1-based position of the record in its ledger.
	Seq int
	// Method is the wrapper method whose check failed, when known.
	Method      string
	Description string
	Message     string
	Actual      any
	Expected    any
	HasValues   bool
	// Location is the file:line of the user code that ran the check.
	Location string
	// Err is the failure as reported at finalization.
	Err error
}

// Listener is called after a failure has been recorded.
type Listener func(Record)

// Ledger is an append-only, ordered list of failures. Append is safe for
// concurrent use and records land in completion order.
type Ledger struct {
	mu         sync.Mutex
	records    []Record
	wasSuccess bool
	listener   Listener
	delegate   *Ledger
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{wasSuccess: true}
}

// DelegateTo routes every subsequent failure into target instead of l.
// Passing nil or l itself clears the delegation. A target whose delegation
// chain leads back to l is rejected with a *failure.ConfigurationError.
func (l *Ledger) DelegateTo(target *Ledger) error {
	if target == l {
		target = nil
	}

	for next := target; next != nil; next = next.delegateOf() {
		if next == l {
			return failure.Misconfigured("ledger.DelegateTo", "delegation cycle")
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.delegate = target

	return nil
}

// Target returns the ledger that stores l's records: the end of its
// delegation chain, or l itself.
func (l *Ledger) Target() *Ledger {
	target := l
	for next := l.delegateOf(); next != nil; next = next.delegateOf() {
		target = next
	}

	return target
}

func (l *Ledger) delegateOf() *Ledger {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.delegate
}

// OnCollected installs fn as the after-collection listener.
func (l *Ledger) OnCollected(fn Listener) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.listener = fn
}

// Append records err raised by method and returns the stored record.
func (l *Ledger) Append(method string, err error) Record {
	rec := l.store(newRecord(method, err, Caller()))

	l.mu.Lock()
	listener := l.listener
	l.mu.Unlock()

	if listener != nil {
		listener(rec)
	}

	return rec
}

// Merge appends copies of records after the existing ones, renumbering them,
// and calls the listener for each. Locations and errors are kept as recorded.
func (l *Ledger) Merge(records []Record) {
	l.mu.Lock()
	listener := l.listener
	l.mu.Unlock()

	for _, rec := range records {
		stored := l.store(rec)

		if listener != nil {
			listener(stored)
		}
	}
}

func (l *Ledger) store(rec Record) Record {
	l.mu.Lock()
	delegate := l.delegate

	if delegate == nil {
		rec.Seq = len(l.records) + 1
		l.records = append(l.records, rec)
		l.wasSuccess = false
	}
	l.mu.Unlock()

	if delegate != nil {
		return delegate.store(rec)
	}

	return rec
}

// Succeeded marks the most recent check as passed.
func (l *Ledger) Succeeded() {
	l.mu.Lock()
	delegate := l.delegate
	l.wasSuccess = true
	l.mu.Unlock()

	if delegate != nil {
		delegate.Succeeded()
	}
}

// WasSuccess reports whether the most recent check passed.
func (l *Ledger) WasSuccess() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.delegate != nil {
		return l.delegate.WasSuccess()
	}

	return l.wasSuccess
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.Records())
}

// Records returns a copy of the records in order.
func (l *Ledger) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.delegate != nil {
		return l.delegate.Records()
	}

	out := make([]Record, len(l.records))
	copy(out, l.records)

	return out
}

// Errors returns the recorded failures in order.
func (l *Ledger) Errors() []error {
	records := l.Records()

	errs := make([]error, len(records))
	for i, rec := range records {
		errs[i] = rec.Err
	}

	return errs
}

// Reset drops every record and marks the ledger successful. A delegating
// ledger resets its delegate, whose records it reports.
func (l *Ledger) Reset() {
	l.mu.Lock()
	delegate := l.delegate

	if delegate == nil {
		l.records = nil
		l.wasSuccess = true
	}
	l.mu.Unlock()

	if delegate != nil {
		delegate.Reset()
	}
}

// Finalize returns nil for an empty ledger, or one *failure.MultipleFailuresError
// listing every record in order. The ledger is left untouched.
func (l *Ledger) Finalize() error {
	errs := l.Errors()
	if len(errs) == 0 {
		return nil
	}

	return failure.Collected(errs)
}

func newRecord(method string, err error, location string) Record {
	rec := Record{Method: method, Location: location, Err: err}

	var assertion *failure.AssertionError
	if errors.As(err, &assertion) {
		rec.Description = assertion.Description
		rec.Message = assertion.Message
		rec.Actual = assertion.Actual
		rec.Expected = assertion.Expected
		rec.HasValues = assertion.HasValues

		if location != "" && assertion.Location == "" && assertion == err {
			rec.Err = assertion.At(location)
		}

		return rec
	}

	if err != nil {
		rec.Message = err.Error()
	}

	return rec
}
