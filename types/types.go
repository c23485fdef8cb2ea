// Package types provides shared types and errors for the cqlbridge library.
//
// This is a "leaf" package with no imports from other cqlbridge packages,
// allowing it to be imported by any package without causing import cycles.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// Consistency represents the Cassandra consistency level.
type Consistency uint16

// Common consistency levels matching the native protocol values.
const (
	Any         Consistency = 0x00
	One         Consistency = 0x01
	Two         Consistency = 0x02
	Three       Consistency = 0x03
	Quorum      Consistency = 0x04
	All         Consistency = 0x05
	LocalQuorum Consistency = 0x06
	EachQuorum  Consistency = 0x07
	Serial      Consistency = 0x08
	LocalSerial Consistency = 0x09
	LocalOne    Consistency = 0x0A
)

var consistencyNames = map[Consistency]string{
	Any:         "ANY",
	One:         "ONE",
	Two:         "TWO",
	Three:       "THREE",
	Quorum:      "QUORUM",
	All:         "ALL",
	LocalQuorum: "LOCAL_QUORUM",
	EachQuorum:  "EACH_QUORUM",
	Serial:      "SERIAL",
	LocalSerial: "LOCAL_SERIAL",
	LocalOne:    "LOCAL_ONE",
}

// String returns the CQL name of the consistency level.
func (c Consistency) String() string {
	if name, ok := consistencyNames[c]; ok {
		return name
	}

	return fmt.Sprintf("CONSISTENCY(0x%02X)", uint16(c))
}

// ParseConsistency parses a CQL consistency name such as "LOCAL_QUORUM".
// Matching is case-insensitive.
//
// Parameters:
//   - s: Consistency name
//
// Returns:
//   - Consistency: The parsed level
//   - error: Error if the name is unknown
func ParseConsistency(s string) (Consistency, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for c, name := range consistencyNames {
		if name == upper {
			return c, nil
		}
	}

	return 0, fmt.Errorf("cqlbridge: unknown consistency %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Consistency) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Consistency) UnmarshalText(text []byte) error {
	parsed, err := ParseConsistency(string(text))
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}

// BatchType represents the type of batch operation.
type BatchType byte

// Batch types matching the native protocol values.
//
// WARNING: CounterBatch operations are NOT idempotent. Counter updates
// (e.g., "UPDATE ... SET counter = counter + 1") are additive, so resubmitting
// a counter batch after an ambiguous failure may double-count.
const (
	LoggedBatch   BatchType = 0
	UnloggedBatch BatchType = 1
	CounterBatch  BatchType = 2
)

// String returns the name of the batch type.
func (b BatchType) String() string {
	switch b {
	case LoggedBatch:
		return "LOGGED"
	case UnloggedBatch:
		return "UNLOGGED"
	case CounterBatch:
		return "COUNTER"
	}

	return fmt.Sprintf("BATCH(%d)", byte(b))
}

// Valid reports whether b is one of the known batch types.
func (b BatchType) Valid() bool {
	return b <= CounterBatch
}

// Operation names an asynchronous operation issued through a session.
// It is used as a label in logs and metrics.
type Operation string

// Operations issued through a session.
const (
	OpConnect Operation = "connect"
	OpClose   Operation = "close"
	OpPrepare Operation = "prepare"
	OpExecute Operation = "execute"
	OpBatch   Operation = "batch"
)

// Operations lists every Operation value.
func Operations() []Operation {
	return []Operation{OpConnect, OpClose, OpPrepare, OpExecute, OpBatch}
}

// ResourceKind names a class of native resource owned by a wrapper.
type ResourceKind string

// Native resource kinds.
const (
	ResourceSession   ResourceKind = "session"
	ResourceFuture    ResourceKind = "future"
	ResourceStatement ResourceKind = "statement"
	ResourcePrepared  ResourceKind = "prepared"
	ResourceBatch     ResourceKind = "batch"
	ResourceCluster   ResourceKind = "cluster"
)

// ResourceKinds lists every ResourceKind value.
func ResourceKinds() []ResourceKind {
	return []ResourceKind{
		ResourceSession, ResourceFuture, ResourceStatement,
		ResourcePrepared, ResourceBatch, ResourceCluster,
	}
}

// Sentinel errors for wrapper-local failures.
var (
	// ErrFutureConsumed indicates Wait or Discard was called on a future
	// that has already been resolved.
	ErrFutureConsumed = errors.New("cqlbridge: future already consumed")

	// ErrResourceReleased indicates an operation on a handle whose native
	// resource has already been released.
	ErrResourceReleased = errors.New("cqlbridge: native resource already released")

	// ErrSessionMoved indicates an operation on a session whose ownership is
	// held by a pending connect future.
	ErrSessionMoved = errors.New("cqlbridge: session is owned by a pending connect")

	// ErrInvalidEncoding indicates text that cannot be converted to the native
	// string representation.
	ErrInvalidEncoding = errors.New("cqlbridge: text cannot be encoded for the native driver")

	// ErrNilDriver indicates that a nil native driver was provided.
	ErrNilDriver = errors.New("cqlbridge: native driver cannot be nil")

	// ErrInvalidConfig indicates a cluster configuration failed validation.
	ErrInvalidConfig = errors.New("cqlbridge: invalid cluster configuration")
)

// EncodingError reports text that cannot cross the native boundary.
type EncodingError struct {
	// Field names the rejected input (e.g. "query", "keyspace").
	Field string

	// Offset is the byte offset of the first offending byte.
	Offset int

	// Reason describes the problem.
	Reason string
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("cqlbridge: cannot encode %s: %s at byte %d", e.Field, e.Reason, e.Offset)
}

// Is reports whether target is ErrInvalidEncoding.
func (e *EncodingError) Is(target error) bool {
	return target == ErrInvalidEncoding
}
