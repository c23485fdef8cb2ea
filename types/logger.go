package types

// Logger is the structured logging interface used by cqlbridge.
//
// Each method takes a message followed by alternating key/value pairs,
// matching the *w methods of zap.SugaredLogger (see contrib/logging/zap).
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}
