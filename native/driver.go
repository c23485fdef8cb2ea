// Package native defines the fixed boundary between cqlbridge and the
// database driver that actually talks to the cluster.
//
// Every resource that crosses the boundary is an opaque, non-zero handle.
// The driver owns the objects behind the handles; callers own the handles
// and must return each one to the matching Free function exactly once.
// Zero is never a valid handle.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. In particular, session
// level calls (execute, prepare, batch, schema) may be issued from many
// goroutines against the same session handle; the driver is responsible for
// synchronizing them internally. cqlbridge relies on this guarantee and adds
// no locks of its own.
package native

import "github.com/arloliu/cqlbridge/types"

// Opaque handles to native resources.
type (
	ClusterHandle   uint64
	SessionHandle   uint64
	FutureHandle    uint64
	StatementHandle uint64
	PreparedHandle  uint64
	BatchHandle     uint64
)

// Driver is the native driver's entry point surface.
//
// Functions that return a FutureHandle never fail synchronously: any error
// is reported through FutureErrorCode once the future completes.
type Driver interface {
	// ----------------------
	// Cluster configuration
	// ----------------------

	// ClusterNew creates a cluster configuration object.
	ClusterNew(cfg types.ClusterConfig) (ClusterHandle, types.Status)

	// ClusterFree releases a cluster configuration object.
	ClusterFree(cluster ClusterHandle)

	// ----------------------
	// Session lifecycle
	// ----------------------

	// SessionNew creates a disconnected session. It does not contact the network.
	SessionNew() SessionHandle

	// SessionFree releases a session, closing it first if it is connected.
	SessionFree(session SessionHandle)

	// SessionClose begins an asynchronous shutdown of the session's connections.
	SessionClose(session SessionHandle) FutureHandle

	// SessionConnect connects the session using the cluster configuration.
	// The configuration is copied; the cluster handle may be freed afterwards.
	SessionConnect(session SessionHandle, cluster ClusterHandle) FutureHandle

	// SessionConnectKeyspace connects and sets the session keyspace.
	SessionConnectKeyspace(session SessionHandle, cluster ClusterHandle, keyspace string) FutureHandle

	// ----------------------
	// Query submission
	// ----------------------

	// SessionPrepare prepares a statement. The future yields a prepared handle.
	SessionPrepare(session SessionHandle, query string) FutureHandle

	// SessionExecute executes a statement. The statement is copied at
	// submission and remains owned by the caller. The future yields a result.
	SessionExecute(session SessionHandle, statement StatementHandle) FutureHandle

	// SessionExecuteBatch executes a batch. The batch is copied at submission.
	SessionExecuteBatch(session SessionHandle, batch BatchHandle) FutureHandle

	// ----------------------
	// Metadata
	// ----------------------

	// SessionGetSchema returns a snapshot of the session's schema metadata.
	SessionGetSchema(session SessionHandle) types.SchemaMeta

	// ----------------------
	// Statements
	// ----------------------

	// StatementNew creates a statement with paramCount bind slots.
	StatementNew(query string, paramCount int) StatementHandle

	// StatementFree releases a statement.
	StatementFree(statement StatementHandle)

	// StatementBind binds a value to the parameter at index.
	StatementBind(statement StatementHandle, index int, value any) types.Status

	// StatementSetConsistency sets the statement consistency.
	StatementSetConsistency(statement StatementHandle, c types.Consistency) types.Status

	// StatementSetSerialConsistency sets the serial consistency for conditional updates.
	StatementSetSerialConsistency(statement StatementHandle, c types.Consistency) types.Status

	// StatementSetPageSize sets the number of rows per page.
	StatementSetPageSize(statement StatementHandle, pageSize int) types.Status

	// StatementSetPagingState resumes a query from a previous result's paging state.
	StatementSetPagingState(statement StatementHandle, state []byte) types.Status

	// StatementSetTimestamp sets the write timestamp in microseconds.
	StatementSetTimestamp(statement StatementHandle, ts int64) types.Status

	// ----------------------
	// Prepared statements
	// ----------------------

	// PreparedBind creates a new statement from a prepared statement.
	PreparedBind(prepared PreparedHandle) StatementHandle

	// PreparedQuery returns the query text of a prepared statement.
	PreparedQuery(prepared PreparedHandle) string

	// PreparedFree releases a prepared statement.
	PreparedFree(prepared PreparedHandle)

	// ----------------------
	// Batches
	// ----------------------

	// BatchNew creates an empty batch.
	BatchNew(kind types.BatchType) BatchHandle

	// BatchFree releases a batch.
	BatchFree(batch BatchHandle)

	// BatchAddStatement copies a statement into the batch.
	BatchAddStatement(batch BatchHandle, statement StatementHandle) types.Status

	// BatchSetConsistency sets the batch consistency.
	BatchSetConsistency(batch BatchHandle, c types.Consistency) types.Status

	// BatchSetTimestamp sets the write timestamp for every statement in the batch.
	BatchSetTimestamp(batch BatchHandle, ts int64) types.Status

	// ----------------------
	// Future protocol
	// ----------------------

	// FutureWait blocks until the future completes.
	FutureWait(future FutureHandle)

	// FutureReady reports whether the future has completed, without blocking.
	FutureReady(future FutureHandle) bool

	// FutureErrorCode returns the completion status. It blocks until completion.
	FutureErrorCode(future FutureHandle) types.Status

	// FutureErrorMessage returns the driver's description of a failure.
	FutureErrorMessage(future FutureHandle) string

	// FutureGetPrepared returns a new prepared handle from a completed prepare
	// future, or zero if the future carries none.
	FutureGetPrepared(future FutureHandle) PreparedHandle

	// FutureGetResult returns a copy of the result from a completed execute or
	// batch future, or nil if the future carries none.
	FutureGetResult(future FutureHandle) *types.ResultSet

	// FutureFree releases a future. Freeing a pending future is allowed; the
	// operation continues inside the driver and its outcome is discarded.
	FutureFree(future FutureHandle)
}
