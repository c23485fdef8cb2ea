// Package types provides shared types and error definitions for the cqlbridge library.
//
// This is a leaf package with zero cqlbridge imports to prevent import cycles.
// All packages in cqlbridge can safely import this package.
//
// # Status Codes
//
// Status mirrors the native driver's status space. Zero is success; any other
// value carries a source (lib, server, ssl, compression) and a code:
//
//	err := types.ErrorFromStatus(types.ServerInvalidQuery, "unconfigured table t")
//	code, _ := types.StatusOf(err) // types.ServerInvalidQuery
//	code.Source()                  // types.SourceServer
//
// # Errors
//
// Sentinel errors are provided for wrapper-local failures:
//
//   - ErrFutureConsumed: A future was waited on or discarded twice
//   - ErrResourceReleased: A handle was used after its native resource was freed
//   - ErrSessionMoved: A session was used while a connect future owned it
//   - ErrInvalidEncoding: Text contained bytes the native string form cannot carry
//   - ErrNilDriver: A nil native driver was provided
//   - ErrInvalidConfig: A cluster configuration failed validation
//
// # Snapshots
//
// ResultSet and SchemaMeta are plain-data copies taken from native results,
// valid after the native resource they came from has been released.
package types
