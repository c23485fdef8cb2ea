package cql

import (
	"sync"
	"sync/atomic"

	"github.com/arloliu/cqlbridge/internal/handle"
	"github.com/arloliu/cqlbridge/native"
	"github.com/arloliu/cqlbridge/types"
)

// Type aliases for convenience - re-export from types package.
type (
	BatchType   = types.BatchType
	Consistency = types.Consistency
)

// Re-export batch type constants for convenience.
const (
	LoggedBatch   = types.LoggedBatch
	UnloggedBatch = types.UnloggedBatch
	CounterBatch  = types.CounterBatch
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

// KeyspacesQuery lists the keyspaces known to the cluster.
const KeyspacesQuery = "SELECT keyspace_name FROM system_schema.keyspaces"

// preparedRecord is the object behind a prepared handle.
type preparedRecord struct {
	query      string
	paramCount int
}

// Base implements the handle-only part of native.Driver: statements,
// prepared statements, batches and the future protocol.
//
// Driver adapters embed *Base and add the session and cluster entry points.
// Every table is safe for concurrent use. Base also counts releases per
// resource kind, and frees of handles that were never issued or were
// already released, so tests can check that every native resource is
// returned exactly once.
type Base struct {
	futures    *handle.Table[*Completion]
	statements *handle.Table[*StatementRecord]
	prepared   *handle.Table[preparedRecord]
	batches    *handle.Table[*BatchRecord]

	// statement and batch records are mutated in place by setters
	mu sync.Mutex

	released     sync.Map // types.ResourceKind -> *atomic.Int64
	invalidFrees atomic.Int64
}

// NewBase creates an empty runtime.
func NewBase() *Base {
	return &Base{
		futures:    handle.NewTable[*Completion](),
		statements: handle.NewTable[*StatementRecord](),
		prepared:   handle.NewTable[preparedRecord](),
		batches:    handle.NewTable[*BatchRecord](),
	}
}

// ----------------------
// Future protocol
// ----------------------

// Go runs fn on a new goroutine and returns a future handle resolved with
// its outcome.
func (b *Base) Go(fn func() Outcome) native.FutureHandle {
	c := NewCompletion()
	h := b.futures.Put(c)
	go func() {
		c.Resolve(fn())
	}()

	return native.FutureHandle(h)
}

// Resolved returns a future handle that is already complete.
func (b *Base) Resolved(o Outcome) native.FutureHandle {
	c := NewCompletion()
	c.Resolve(o)

	return native.FutureHandle(b.futures.Put(c))
}

func (b *Base) completion(f native.FutureHandle) (*Completion, bool) {
	return b.futures.Get(uint64(f))
}

// FutureWait blocks until the future completes.
func (b *Base) FutureWait(f native.FutureHandle) {
	if c, ok := b.completion(f); ok {
		c.Wait()
	}
}

// FutureReady reports whether the future has completed.
func (b *Base) FutureReady(f native.FutureHandle) bool {
	c, ok := b.completion(f)

	return ok && c.Ready()
}

// FutureErrorCode returns the completion status, blocking until completion.
func (b *Base) FutureErrorCode(f native.FutureHandle) types.Status {
	c, ok := b.completion(f)
	if !ok {
		return types.LibBadParams
	}

	return c.Wait().Status
}

// FutureErrorMessage returns the failure description.
func (b *Base) FutureErrorMessage(f native.FutureHandle) string {
	c, ok := b.completion(f)
	if !ok {
		return "invalid future handle"
	}

	return c.Wait().Message
}

// FutureGetPrepared returns a new prepared handle from a prepare future.
func (b *Base) FutureGetPrepared(f native.FutureHandle) native.PreparedHandle {
	c, ok := b.completion(f)
	if !ok {
		return 0
	}
	o := c.Wait()
	if !o.Status.OK() || !o.Prepared {
		return 0
	}

	return b.NewPrepared(o.PreparedCQL)
}

// FutureGetResult returns a copy of the result of an execute or batch future.
func (b *Base) FutureGetResult(f native.FutureHandle) *types.ResultSet {
	c, ok := b.completion(f)
	if !ok {
		return nil
	}
	o := c.Wait()
	if !o.Status.OK() || o.Result == nil {
		return nil
	}
	rs := *o.Result

	return &rs
}

// FutureFree releases a future. A pending operation keeps running.
func (b *Base) FutureFree(f native.FutureHandle) {
	b.free(types.ResourceFuture, release(b.futures, uint64(f)))
}

// ----------------------
// Statements
// ----------------------

// StatementNew creates a statement with paramCount unbound slots.
func (b *Base) StatementNew(query string, paramCount int) native.StatementHandle {
	return native.StatementHandle(b.statements.Put(NewStatementRecord(query, paramCount)))
}

// StatementFree releases a statement.
func (b *Base) StatementFree(s native.StatementHandle) {
	b.free(types.ResourceStatement, release(b.statements, uint64(s)))
}

// Statement returns a copy of the statement's current state.
func (b *Base) Statement(s native.StatementHandle) (StatementRecord, bool) {
	rec, ok := b.statements.Get(uint64(s))
	if !ok {
		return StatementRecord{}, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return rec.Clone(), true
}

func (b *Base) updateStatement(s native.StatementHandle, fn func(*StatementRecord) types.Status) types.Status {
	rec, ok := b.statements.Get(uint64(s))
	if !ok {
		return types.LibBadParams
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return fn(rec)
}

// StatementBind binds value to the slot at index.
func (b *Base) StatementBind(s native.StatementHandle, index int, value any) types.Status {
	return b.updateStatement(s, func(r *StatementRecord) types.Status {
		return r.Bind(index, value)
	})
}

// StatementSetConsistency sets the statement consistency.
func (b *Base) StatementSetConsistency(s native.StatementHandle, c types.Consistency) types.Status {
	return b.updateStatement(s, func(r *StatementRecord) types.Status {
		r.Consistency = &c

		return types.StatusOK
	})
}

// StatementSetSerialConsistency sets the serial consistency. Only SERIAL
// and LOCAL_SERIAL are accepted.
func (b *Base) StatementSetSerialConsistency(s native.StatementHandle, c types.Consistency) types.Status {
	if c != types.Serial && c != types.LocalSerial {
		return types.LibBadParams
	}

	return b.updateStatement(s, func(r *StatementRecord) types.Status {
		r.SerialConsistency = &c

		return types.StatusOK
	})
}

// StatementSetPageSize sets the page size. Zero or less disables paging.
func (b *Base) StatementSetPageSize(s native.StatementHandle, pageSize int) types.Status {
	return b.updateStatement(s, func(r *StatementRecord) types.Status {
		r.PageSize = pageSize

		return types.StatusOK
	})
}

// StatementSetPagingState sets the page to resume from.
func (b *Base) StatementSetPagingState(s native.StatementHandle, state []byte) types.Status {
	return b.updateStatement(s, func(r *StatementRecord) types.Status {
		r.PagingState = append([]byte(nil), state...)

		return types.StatusOK
	})
}

// StatementSetTimestamp sets the write timestamp.
func (b *Base) StatementSetTimestamp(s native.StatementHandle, ts int64) types.Status {
	return b.updateStatement(s, func(r *StatementRecord) types.Status {
		r.Timestamp = &ts

		return types.StatusOK
	})
}

// ----------------------
// Prepared statements
// ----------------------

// NewPrepared registers a prepared statement for query. The number of
// bind slots of statements bound from it is the number of markers in query.
func (b *Base) NewPrepared(query string) native.PreparedHandle {
	return native.PreparedHandle(b.prepared.Put(preparedRecord{
		query:      query,
		paramCount: CountMarkers(query),
	}))
}

// PreparedBind creates a statement from a prepared statement.
func (b *Base) PreparedBind(p native.PreparedHandle) native.StatementHandle {
	rec, ok := b.prepared.Get(uint64(p))
	if !ok {
		return 0
	}

	return b.StatementNew(rec.query, rec.paramCount)
}

// PreparedQuery returns the query text of a prepared statement.
func (b *Base) PreparedQuery(p native.PreparedHandle) string {
	rec, _ := b.prepared.Get(uint64(p))

	return rec.query
}

// PreparedFree releases a prepared statement.
func (b *Base) PreparedFree(p native.PreparedHandle) {
	b.free(types.ResourcePrepared, release(b.prepared, uint64(p)))
}

// ----------------------
// Batches
// ----------------------

// BatchNew creates an empty batch. The kind is checked at execution.
func (b *Base) BatchNew(kind types.BatchType) native.BatchHandle {
	return native.BatchHandle(b.batches.Put(&BatchRecord{Kind: kind}))
}

// BatchFree releases a batch.
func (b *Base) BatchFree(bh native.BatchHandle) {
	b.free(types.ResourceBatch, release(b.batches, uint64(bh)))
}

// Batch returns a copy of the batch's current state.
func (b *Base) Batch(bh native.BatchHandle) (BatchRecord, bool) {
	rec, ok := b.batches.Get(uint64(bh))
	if !ok {
		return BatchRecord{}, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return rec.Clone(), true
}

// BatchAddStatement copies a statement into the batch.
func (b *Base) BatchAddStatement(bh native.BatchHandle, s native.StatementHandle) types.Status {
	batch, ok := b.batches.Get(uint64(bh))
	if !ok {
		return types.LibBadParams
	}
	stmt, ok := b.statements.Get(uint64(s))
	if !ok {
		return types.LibBadParams
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	batch.Entries = append(batch.Entries, stmt.Clone())

	return types.StatusOK
}

// BatchSetConsistency sets the batch consistency.
func (b *Base) BatchSetConsistency(bh native.BatchHandle, c types.Consistency) types.Status {
	batch, ok := b.batches.Get(uint64(bh))
	if !ok {
		return types.LibBadParams
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	batch.Consistency = &c

	return types.StatusOK
}

// BatchSetTimestamp sets the batch write timestamp.
func (b *Base) BatchSetTimestamp(bh native.BatchHandle, ts int64) types.Status {
	batch, ok := b.batches.Get(uint64(bh))
	if !ok {
		return types.LibBadParams
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	batch.Timestamp = &ts

	return types.StatusOK
}

// ----------------------
// Accounting
// ----------------------

func release[T any](t *handle.Table[T], id uint64) bool {
	_, ok := t.Release(id)

	return ok
}

// free records the outcome of releasing one handle of kind.
func (b *Base) free(kind types.ResourceKind, released bool) {
	if !released {
		b.invalidFrees.Add(1)

		return
	}
	b.CountRelease(kind)
}

// CountRelease records one release of kind. Adapters call it for the
// session and cluster handles they own.
func (b *Base) CountRelease(kind types.ResourceKind) {
	v, _ := b.released.LoadOrStore(kind, new(atomic.Int64))
	v.(*atomic.Int64).Add(1)
}

// CountInvalidFree records a free of a handle that was not live.
func (b *Base) CountInvalidFree() {
	b.invalidFrees.Add(1)
}

// Released returns how many handles of kind have been released.
func (b *Base) Released(kind types.ResourceKind) int64 {
	v, ok := b.released.Load(kind)
	if !ok {
		return 0
	}

	return v.(*atomic.Int64).Load()
}

// InvalidFrees returns how many frees named a handle that was not live.
func (b *Base) InvalidFrees() int64 {
	return b.invalidFrees.Load()
}

// Live returns the number of live handles of kind held in the runtime's
// tables. Session and cluster handles are tracked by adapters.
func (b *Base) Live(kind types.ResourceKind) int {
	switch kind {
	case types.ResourceFuture:
		return b.futures.Len()
	case types.ResourceStatement:
		return b.statements.Len()
	case types.ResourcePrepared:
		return b.prepared.Len()
	case types.ResourceBatch:
		return b.batches.Len()
	default:
		return 0
	}
}
