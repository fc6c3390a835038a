package ledger

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
)

const (
	libraryPrefix = "github.com/LerianStudio/lib-fluent/"
	maxFrames     = 32
)

var recordLocation atomic.Bool

func init() {
	recordLocation.Store(true)
}

// SetRecordLocation turns caller location capture on or off.
func SetRecordLocation(enabled bool) {
	recordLocation.Store(enabled)
}

// RecordsLocation reports whether caller locations are captured.
func RecordsLocation() bool {
	return recordLocation.Load()
}

// Caller returns "file.go:line" of the first frame outside this library,
// or "" when capture is disabled or no such frame exists. Test files of the
// library itself count as outside.
func Caller() string {
	if !RecordsLocation() {
		return ""
	}

	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()

		if isUserFrame(frame) {
			return filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
		}

		if !more {
			return ""
		}
	}
}

func isUserFrame(frame runtime.Frame) bool {
	switch {
	case frame.Function == "":
		return false
	case strings.HasPrefix(frame.Function, "runtime."), strings.HasPrefix(frame.Function, "testing."):
		return false
	case strings.HasPrefix(frame.Function, libraryPrefix):
		return strings.HasSuffix(frame.File, "_test.go")
	default:
		return true
	}
}
