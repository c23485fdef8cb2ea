package logging

import "github.com/arloliu/cqlbridge/types"

// Scoped is a logger that prepends fixed key/value pairs to every message.
//
// Sessions use it so that every line logged by the session and by the
// futures it issues carries the session identifier.
type Scoped struct {
	base   types.Logger
	fields []any
}

var _ types.Logger = (*Scoped)(nil)

// With returns a logger that adds keysAndValues to every message logged
// through base. Scoping a Scoped logger flattens the chain.
//
// Parameters:
//   - base: The logger to write to; nil yields a no-op logger
//   - keysAndValues: Alternating keys and values
//
// Returns:
//   - *Scoped: The scoped logger
func With(base types.Logger, keysAndValues ...any) *Scoped {
	if base == nil {
		base = NopLogger{}
	}
	if parent, ok := base.(*Scoped); ok {
		fields := make([]any, 0, len(parent.fields)+len(keysAndValues))
		fields = append(fields, parent.fields...)

		return &Scoped{base: parent.base, fields: append(fields, keysAndValues...)}
	}

	return &Scoped{base: base, fields: append([]any(nil), keysAndValues...)}
}

// Fields returns a copy of the scoped key/value pairs.
func (l *Scoped) Fields() []any {
	return append([]any(nil), l.fields...)
}

func (l *Scoped) merge(keysAndValues []any) []any {
	if len(keysAndValues) == 0 {
		return l.fields
	}
	kv := make([]any, 0, len(l.fields)+len(keysAndValues))
	kv = append(kv, l.fields...)

	return append(kv, keysAndValues...)
}

func (l *Scoped) Debug(msg string, keysAndValues ...any) {
	l.base.Debug(msg, l.merge(keysAndValues)...)
}

func (l *Scoped) Info(msg string, keysAndValues ...any) {
	l.base.Info(msg, l.merge(keysAndValues)...)
}

func (l *Scoped) Warn(msg string, keysAndValues ...any) {
	l.base.Warn(msg, l.merge(keysAndValues)...)
}

func (l *Scoped) Error(msg string, keysAndValues ...any) {
	l.base.Error(msg, l.merge(keysAndValues)...)
}
