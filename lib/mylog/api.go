package mylog

import (
	"context"

	"github.com/rs/zerolog"
)

type Severity string

const (
	SeverityDebug Severity = "DEBUG"
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

var New func(name string) Logger

type Logger interface {
	Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any)
}

var minSeverity = SeverityDebug

// SetMinSeverity drops everything below the given severity, for both backends.
func SetMinSeverity(severity Severity) {
	minSeverity = severity
	zerolog.SetGlobalLevel(toLevel(severity))
}

func enabled(severity Severity) bool {
	return rank(severity) >= rank(minSeverity)
}

func rank(severity Severity) int {
	switch severity {
	case SeverityDebug:
		return 0
	case SeverityWarn:
		return 2
	case SeverityError:
		return 3
	default:
		return 1
	}
}

// ParseSeverity maps a configured level onto a severity; unknown levels become info.
func ParseSeverity(level string) Severity {
	switch Severity(level) {
	case SeverityDebug, "debug":
		return SeverityDebug
	case SeverityWarn, "warn":
		return SeverityWarn
	case SeverityError, "error":
		return SeverityError
	default:
		return SeverityInfo
	}
}
