// Package log provides structured event logging for the rtnetlink
// codec.
//
// The codec itself never writes to a log destination; it emits Events
// to a Logger the caller supplies. Pass nil or NoopLogger to disable
// logging entirely. FileLogger persists events as a stream of CBOR
// records for later inspection with Reader; SlogAdapter bridges events
// into a standard library slog.Logger for console output; MultiLogger
// fans out to several destinations at once.
//
// Events describe codec-level occurrences (opaque fallbacks for
// unknown attributes, truncated records, named-resource opens during
// encoding), not transport traffic, which is outside this library.
package log
