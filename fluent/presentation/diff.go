package presentation

import (
	"strings"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

var colorized atomic.Bool

// SetColorized turns ANSI colouring of diffs on or off.
func SetColorized(enabled bool) {
	colorized.Store(enabled)
}

// Colorized reports whether diffs are coloured.
func Colorized() bool {
	return colorized.Load()
}

// Diff returns a human readable "-expected +actual" diff, or "" when the
// values are equal under opts.
func Diff(expected, actual any, opts ...cmp.Option) string {
	diff := cmp.Diff(expected, actual, opts...)
	if diff == "" || !Colorized() {
		return diff
	}

	removed := color.New(color.FgRed)
	removed.EnableColor()

	added := color.New(color.FgGreen)
	added.EnableColor()

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "-"):
			lines[i] = removed.Sprint(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = added.Sprint(line)
		}
	}

	return strings.Join(lines, "\n")
}
