package log

// Logger is the interface applications implement to receive codec log
// events. Pass nil or NoopLogger to disable logging.
type Logger interface {
	// Log records a codec event. Implementations must be thread-safe.
	// The event should be processed quickly or queued; blocking slows
	// down decoding.
	Log(event Event)
}

// NoopLogger discards all events. Use when logging is disabled.
// NoopLogger is safe for concurrent use and usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// FuncLogger adapts a function to the Logger interface.
type FuncLogger func(Event)

// Log calls f.
func (f FuncLogger) Log(event Event) { f(event) }

// Compile-time interface satisfaction checks.
var (
	_ Logger = NoopLogger{}
	_ Logger = FuncLogger(nil)
)
