package cqlbridge

import "github.com/arloliu/cqlbridge/types"

// Type aliases for convenience - re-export from types package.
type (
	Consistency      = types.Consistency
	BatchType        = types.BatchType
	Status           = types.Status
	StatusError      = types.StatusError
	EncodingError    = types.EncodingError
	ClusterConfig    = types.ClusterConfig
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector

	// Result is one page of rows yielded by a ResultFuture.
	Result = types.ResultSet

	// Schema is a snapshot of schema metadata returned by Session.Schema.
	Schema = types.SchemaMeta
)

// Re-export consistency level constants for convenience.
const (
	Any         = types.Any
	One         = types.One
	Two         = types.Two
	Three       = types.Three
	Quorum      = types.Quorum
	All         = types.All
	LocalQuorum = types.LocalQuorum
	EachQuorum  = types.EachQuorum
	Serial      = types.Serial
	LocalSerial = types.LocalSerial
	LocalOne    = types.LocalOne
)

// Re-export batch type constants for convenience.
const (
	LoggedBatch   = types.LoggedBatch
	UnloggedBatch = types.UnloggedBatch
	CounterBatch  = types.CounterBatch
)

// Re-export sentinel errors for convenience.
var (
	ErrFutureConsumed   = types.ErrFutureConsumed
	ErrResourceReleased = types.ErrResourceReleased
	ErrSessionMoved     = types.ErrSessionMoved
	ErrInvalidEncoding  = types.ErrInvalidEncoding
	ErrNilDriver        = types.ErrNilDriver
	ErrInvalidConfig    = types.ErrInvalidConfig
)

// DefaultClusterConfig returns a ClusterConfig with the native driver's defaults.
func DefaultClusterConfig() ClusterConfig {
	return types.DefaultClusterConfig()
}

// StatusOf extracts the native status from an error returned by Wait.
//
// Parameters:
//   - err: An error, possibly wrapping a *StatusError
//
// Returns:
//   - Status: The native status code
//   - bool: false if err carries no native status
func StatusOf(err error) (Status, bool) {
	return types.StatusOf(err)
}
