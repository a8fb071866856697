// Package logging provides zerolog construction and context helpers shared
// by the CLI and the catalogue client.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Config describes how the application logger should be built.
type Config struct {
	// Level is a zerolog level name ("debug", "info", ...). Invalid values
	// fall back to info.
	Level string
	// Format is "console" or "json".
	Format string
	// File, when non-empty, receives log output instead of stderr.
	File string
	// Caller adds caller annotation to every event.
	Caller bool
}

// NewResult holds the constructed logger together with the file handle that
// backs it, so callers can close the handle on shutdown.
type NewResult struct {
	Logger   zerolog.Logger
	FilePath string
	file     *os.File
}

// Close releases the log file handle, if any.
func (r *NewResult) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New builds a logger from cfg. When cfg.File cannot be opened the logger
// falls back to stderr rather than failing the command.
func New(cfg Config) NewResult {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	result := NewResult{}

	if cfg.File != "" {
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if openErr == nil {
			out = f
			result.FilePath = cfg.File
			result.file = f
		}
	}

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logCtx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}
	result.Logger = logCtx.Logger()
	return result
}

// ComponentLogger returns a child logger tagged with a component name so log
// lines can be traced back to the emitting subsystem.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger attached to ctx, or a disabled logger when
// none was attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

type traceIDKey struct{}

// ContextWithTraceID attaches a trace ID to ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace ID stored in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// GetOrGenerateTraceID returns the trace ID from ctx, generating a fresh
// ULID when none is present. One ID is minted per CLI invocation and stamped
// on every log event so a run's lines can be correlated.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return ulid.Make().String()
}
