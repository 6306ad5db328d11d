package mylog

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newStandardLogger
	}
}

var consoleLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

type standardLogger struct {
	componentName string
	logger        zerolog.Logger
}

func newStandardLogger(componentName string) Logger {
	return standardLogger{
		componentName: componentName,
		logger:        consoleLogger.With().Str("component", componentName).Logger(),
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...interface{}) {
	event := l.logger.WithLevel(toLevel(severity))
	if traceLabel != "" {
		event = event.Str("label", traceLabel)
	}
	event.Msgf(format, a...)
}

func toLevel(severity Severity) zerolog.Level {
	switch severity {
	case SeverityDebug:
		return zerolog.DebugLevel
	case SeverityWarn:
		return zerolog.WarnLevel
	case SeverityError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
