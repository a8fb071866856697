package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/skipwise/skipselect/internal/config"
	"github.com/skipwise/skipselect/internal/logging"
)

// Environment variables recognized for logging overrides.
const (
	envLogLevel  = "SKIPSELECT_LOG_LEVEL"
	envLogFormat = "SKIPSELECT_LOG_FORMAT"
)

// logResultHandle keeps the log file handle alive for the command lifetime.
type logResultHandle struct {
	result logging.NewResult
}

// Close releases the log file handle, if any.
func (h *logResultHandle) Close() error {
	if h == nil {
		return nil
	}
	return h.result.Close()
}

// setupLogging configures logging based on config file, environment and CLI
// flags, attaches a trace ID, and stores the logger in the command context.
// Precedence: --debug flag, then environment, then config file.
func setupLogging(cmd *cobra.Command) *logResultHandle {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	if envLevel := os.Getenv(envLogLevel); envLevel != "" && !debug {
		loggingCfg.Level = envLevel
	}
	if envFormat := os.Getenv(envLogFormat); envFormat != "" && !debug {
		loggingCfg.Format = envFormat
	}

	result := logging.New(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)

	invocationLogger := logger.With().Str("trace_id", traceID).Logger()
	ctx = invocationLogger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Str("trace_id", traceID).Msg("command started")

	return &logResultHandle{result: result}
}
