package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the structured logger shared by the harness components. Every
// action wrapper call emits exactly one record through it; that stream is the
// UI layer's only observability channel.
type Logger struct {
	*slog.Logger
}

// New creates a JSON logger for a component, writing to stdout.
func New(component string, level slog.Level) *Logger {
	return NewWithWriter(component, level, os.Stdout)
}

// NewWithWriter creates a JSON logger writing to w. Tests use this to capture
// the emitted records.
func NewWithWriter(component string, level slog.Level, w io.Writer) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})

	logger := slog.New(handler).With(
		slog.String("component", component),
	)

	return &Logger{Logger: logger}
}

// WithSession returns a logger tagged with the UI session id.
func (l *Logger) WithSession(sessionID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("session_id", sessionID))}
}

// WithScenario returns a logger tagged with the running scenario name.
func (l *Logger) WithScenario(name string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("scenario", name))}
}
