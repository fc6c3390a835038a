// Package log defines the logging contract used by lib-fluent.
//
// The engine only ever talks to Logger; the zap package provides the
// production backend and NewNop is the default.
package log
