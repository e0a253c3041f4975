package log

// MultiLogger fans a codec's event stream out to several sinks, for
// example a FileLogger capturing CBOR records alongside a SlogAdapter
// printing to the console.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger returns a logger that delivers every event to each
// of loggers in order.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Log delivers the event to every sink.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

var _ Logger = (*MultiLogger)(nil)
