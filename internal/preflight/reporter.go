package preflight

import (
	"context"
	"log/slog"

	"migrunner/internal/logging"
)

// Reporter accepts severity-tagged messages produced by failed checks.
type Reporter interface {
	Report(severity Severity, message string)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Severity, string)

func (f ReporterFunc) Report(severity Severity, message string) { f(severity, message) }

// Discard drops every message.
var Discard Reporter = ReporterFunc(func(Severity, string) {})

// SlogReporter writes check messages to a slog logger using the custom
// CRITICAL and FATAL levels from the logging package.
type SlogReporter struct {
	ctx    context.Context
	logger *slog.Logger
}

// NewSlogReporter returns a reporter bound to ctx. A nil logger discards.
func NewSlogReporter(ctx context.Context, logger *slog.Logger) *SlogReporter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &SlogReporter{ctx: ctx, logger: logging.NewComponentLogger(logger, "preflight")}
}

func (r *SlogReporter) Report(severity Severity, message string) {
	level, ok := LevelFor(severity)
	if !ok {
		return
	}
	r.logger.Log(r.ctx, level, message)
}

// LevelFor maps a severity onto a slog level. Silent severities have no level.
func LevelFor(severity Severity) (slog.Level, bool) {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo, true
	case SeverityWarning:
		return slog.LevelWarn, true
	case SeverityError:
		return slog.LevelError, true
	case SeverityCritical:
		return logging.LevelCritical, true
	case SeverityFatal:
		return logging.LevelFatal, true
	default:
		return 0, false
	}
}
