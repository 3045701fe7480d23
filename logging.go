package remoteui

import "time"

// LogEvent describes one engine operation for logging.
type LogEvent struct {
	Component string
	Operation string
	Subject   string
	Locale    string
	Duration  time.Duration
	Err       error
	Attrs     map[string]any
}

// Logger records engine events. Implementations must be safe for concurrent use.
type Logger interface {
	LogEvent(LogEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(LogEvent)

// LogEvent implements Logger.
func (f LoggerFunc) LogEvent(event LogEvent) {
	if f != nil {
		f(event)
	}
}

// NopLogger discards all events.
type NopLogger struct{}

func (NopLogger) LogEvent(LogEvent) {}
