//go:build unit

package ledger

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

func TestAppendKeepsOrder(t *testing.T) {
	t.Parallel()

	l := New()
	assert.True(t, l.WasSuccess())
	require.NoError(t, l.Finalize())

	l.Append("IsEqualTo", failure.New("first"))
	l.Succeeded()
	l.Append("Contains", failure.New("second"))

	records := l.Records()
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Seq)
	assert.Equal(t, "IsEqualTo", records[0].Method)
	assert.Equal(t, "first", records[0].Message)
	assert.Equal(t, 2, records[1].Seq)
	assert.False(t, l.WasSuccess())

	err := l.Finalize()
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrAssertionFailed)
	assert.Equal(t, 2, l.Len(), "finalize does not consume the ledger")
}

func TestAppendCopiesAssertionPayload(t *testing.T) {
	t.Parallel()

	l := New()
	rec := l.Append("IsEqualTo", &failure.AssertionError{Description: "age", Message: "m", Actual: 2, Expected: 3, HasValues: true})

	assert.Equal(t, "age", rec.Description)
	assert.Equal(t, 2, rec.Actual)
	assert.Equal(t, 3, rec.Expected)
	assert.True(t, rec.HasValues)

	plain := l.Append("Satisfies", errors.New("combined"))
	assert.Equal(t, "combined", plain.Message)
}

// Mutates the location switch; not parallel.
func TestLocationDecoration(t *testing.T) {
	t.Cleanup(func() { SetRecordLocation(true) })

	l := New()
	rec := l.Append("IsTrue", failure.New("boom"))

	assert.True(t, strings.HasPrefix(rec.Location, "ledger_test.go:"), rec.Location)
	assert.Contains(t, rec.Err.Error(), "\nat ledger_test.go:")

	SetRecordLocation(false)

	rec = l.Append("IsTrue", failure.New("boom"))
	assert.Empty(t, rec.Location)
	assert.Equal(t, "boom", rec.Err.Error())
}

func TestListenerAndReset(t *testing.T) {
	t.Parallel()

	l := New()

	var seen []int
	l.OnCollected(func(r Record) { seen = append(seen, r.Seq) })

	l.Append("a", failure.New("1"))
	l.Append("b", failure.New("2"))
	assert.Equal(t, []int{1, 2}, seen)

	l.Reset()
	assert.Zero(t, l.Len())
	assert.True(t, l.WasSuccess())
	assert.NoError(t, l.Finalize())
}

func TestDelegation(t *testing.T) {
	t.Parallel()

	outer := New()
	inner := New()
	require.NoError(t, inner.DelegateTo(outer))
	assert.Same(t, outer, inner.Target())

	var listened []string
	inner.OnCollected(func(r Record) { listened = append(listened, r.Message) })

	outer.Append("x", failure.New("outer-1"))
	rec := inner.Append("y", failure.New("inner-1"))

	assert.Equal(t, 2, rec.Seq)
	assert.Equal(t, []string{"inner-1"}, listened)
	assert.Equal(t, 2, outer.Len())
	assert.Equal(t, 2, inner.Len(), "a delegating ledger reports its delegate's records")

	inner.Succeeded()
	assert.True(t, outer.WasSuccess())

	require.NoError(t, inner.DelegateTo(inner))
	assert.Zero(t, inner.Len())
	assert.Same(t, inner, inner.Target())
}

func TestDelegationRejectsCycles(t *testing.T) {
	t.Parallel()

	a, b, c := New(), New(), New()
	require.NoError(t, a.DelegateTo(b))
	require.NoError(t, b.DelegateTo(c))

	err := c.DelegateTo(a)
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrConfiguration)

	c.Append("IsTrue", failure.New("lands in c"))
	assert.Equal(t, 1, a.Len())
	assert.Same(t, c, a.Target())
}

func TestResetThroughDelegate(t *testing.T) {
	t.Parallel()

	outer := New()
	inner := New()
	require.NoError(t, inner.DelegateTo(outer))

	inner.Append("IsTrue", failure.New("boom"))
	require.Equal(t, 1, outer.Len())

	inner.Reset()
	assert.Zero(t, outer.Len())
	assert.Zero(t, inner.Len())
	assert.True(t, outer.WasSuccess())
}

func TestMerge(t *testing.T) {
	t.Parallel()

	source := New()
	source.Append("IsEqualTo", failure.New("from source"))

	target := New()
	target.Append("IsTrue", failure.New("own"))

	var seen []int
	target.OnCollected(func(r Record) { seen = append(seen, r.Seq) })

	target.Merge(source.Records())

	records := target.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "own", records[0].Message)
	assert.Equal(t, "from source", records[1].Message)
	assert.Equal(t, 2, records[1].Seq)
	assert.Equal(t, "IsEqualTo", records[1].Method)
	assert.Equal(t, []int{2}, seen)
	assert.False(t, target.WasSuccess())
	assert.Equal(t, 1, source.Len(), "the source is left untouched")
}

func TestConcurrentAppend(t *testing.T) {
	t.Parallel()

	const workers, perWorker = 8, 50

	l := New()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func(w int) {
			defer wg.Done()

			for i := 0; i < perWorker; i++ {
				l.Append("check", failure.New("w%d-%d", w, i))
			}
		}(w)
	}

	wg.Wait()

	records := l.Records()
	require.Len(t, records, workers*perWorker)

	for i, rec := range records {
		assert.Equal(t, i+1, rec.Seq, fmt.Sprintf("record %d", i))
	}
}
