// Package logging provides internal logging utilities for cqlbridge.
package logging

import "github.com/arloliu/cqlbridge/types"

// NopLogger is a no-op logger that discards all log messages.
//
// This is used as the default logger when no logger is configured,
// avoiding nil checks throughout the codebase.
type NopLogger struct{}

var _ types.Logger = NopLogger{}

// NewNopLogger returns the no-op logger.
func NewNopLogger() NopLogger {
	return NopLogger{}
}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
