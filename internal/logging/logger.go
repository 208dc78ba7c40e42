// Package logging defines the structured-logging interface used by the
// timecard client. Messages are dotted event names ("timecard.http.request")
// followed by key–value pairs.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "timecard.http.response", "status", 200, "elapsed_ms", 41)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)

	// Warn is for recoverable conditions, such as a refused edit.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
