// Package zaplog sends remoteui log events to a zap logger.
package zaplog

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	remoteui "github.com/goliatone/go-remoteui"
)

// Logger adapts *zap.Logger to remoteui.Logger. Events carrying an error log
// at warn level, everything else at debug.
type Logger struct {
	l *zap.Logger
}

var _ remoteui.Logger = Logger{}

// New wraps l. A nil l discards everything.
func New(l *zap.Logger) Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return Logger{l: l}
}

// NewStructured builds a zap logger for level ("debug", "info", "warn",
// "error") and format ("json" or console) and wraps it.
func NewStructured(level, format string) (Logger, error) {
	l, err := Build(level, format)
	if err != nil {
		return Logger{}, err
	}
	return New(l), nil
}

// Build returns the zap logger described by level and format.
func Build(level, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(format, "json") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	return cfg.Build()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Zap returns the wrapped logger.
func (z Logger) Zap() *zap.Logger {
	return z.l
}

func (z Logger) LogEvent(event remoteui.LogEvent) {
	if z.l == nil {
		return
	}
	fields := make([]zap.Field, 0, 5+len(event.Attrs))
	fields = append(fields, zap.String("component", event.Component))
	if event.Subject != "" {
		fields = append(fields, zap.String("subject", event.Subject))
	}
	if event.Locale != "" {
		fields = append(fields, zap.String("locale", event.Locale))
	}
	if event.Duration > 0 {
		fields = append(fields, zap.Duration("duration", event.Duration))
	}
	for key, value := range event.Attrs {
		fields = append(fields, zap.Any(key, value))
	}

	msg := event.Component + "." + event.Operation
	if event.Err != nil {
		z.l.Warn(msg, append(fields, zap.Error(event.Err))...)
		return
	}
	z.l.Debug(msg, fields...)
}
