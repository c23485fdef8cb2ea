package cqlbridge

import (
	"sync/atomic"

	"github.com/arloliu/cqlbridge/native"
	"github.com/arloliu/cqlbridge/types"
)

// Statement owns one native statement.
//
// Executing a statement does not consume it. Free releases the native
// statement exactly once.
type Statement struct {
	driver   native.Driver
	handle   native.StatementHandle
	config   *Config
	query    string
	released atomic.Bool
}

func newStatement(driver native.Driver, config *Config, handle native.StatementHandle, query string) *Statement {
	return &Statement{
		driver: driver,
		handle: handle,
		config: config,
		query:  query,
	}
}

// Query returns the statement's CQL text.
func (st *Statement) Query() string {
	return st.query
}

// live returns the native handle if the statement has not been freed.
func (st *Statement) live() (native.StatementHandle, error) {
	if st == nil || st.released.Load() {
		return 0, types.ErrResourceReleased
	}

	return st.handle, nil
}

func (st *Statement) apply(fn func(h native.StatementHandle) types.Status) error {
	h, err := st.live()
	if err != nil {
		return err
	}

	return types.ErrorFromStatus(fn(h), "")
}

// Bind binds value to the parameter at index.
//
// Parameters:
//   - index: Zero-based parameter index
//   - value: Value to bind
//
// Returns:
//   - error: *types.StatusError (e.g. LIB_INDEX_OUT_OF_BOUNDS), or nil
func (st *Statement) Bind(index int, value any) error {
	return st.apply(func(h native.StatementHandle) types.Status {
		return st.driver.StatementBind(h, index, value)
	})
}

// BindAll binds values to consecutive parameters starting at index zero.
func (st *Statement) BindAll(values ...any) error {
	for i, v := range values {
		if err := st.Bind(i, v); err != nil {
			return err
		}
	}

	return nil
}

// SetConsistency sets the consistency level.
func (st *Statement) SetConsistency(c Consistency) error {
	return st.apply(func(h native.StatementHandle) types.Status {
		return st.driver.StatementSetConsistency(h, c)
	})
}

// SetSerialConsistency sets the consistency for the serial phase of
// conditional updates. Valid values are Serial or LocalSerial.
func (st *Statement) SetSerialConsistency(c Consistency) error {
	return st.apply(func(h native.StatementHandle) types.Status {
		return st.driver.StatementSetSerialConsistency(h, c)
	})
}

// SetPageSize sets the number of rows per result page.
func (st *Statement) SetPageSize(n int) error {
	return st.apply(func(h native.StatementHandle) types.Status {
		return st.driver.StatementSetPageSize(h, n)
	})
}

// SetPagingState resumes the query at the page after a previous result.
//
// Parameters:
//   - state: Result.PagingState from the previous page
func (st *Statement) SetPagingState(state []byte) error {
	return st.apply(func(h native.StatementHandle) types.Status {
		return st.driver.StatementSetPagingState(h, state)
	})
}

// SetTimestamp sets the write timestamp in microseconds since the Unix epoch.
func (st *Statement) SetTimestamp(ts int64) error {
	return st.apply(func(h native.StatementHandle) types.Status {
		return st.driver.StatementSetTimestamp(h, ts)
	})
}

// Free releases the native statement.
//
// Returns:
//   - error: ErrResourceReleased if already released
func (st *Statement) Free() error {
	if !st.released.CompareAndSwap(false, true) {
		return types.ErrResourceReleased
	}
	st.driver.StatementFree(st.handle)
	st.config.Metrics.IncReleased(types.ResourceStatement)

	return nil
}

// Prepared owns one native prepared statement, yielded by a PreparedFuture.
type Prepared struct {
	driver   native.Driver
	handle   native.PreparedHandle
	config   *Config
	query    string
	released atomic.Bool
}

func newPrepared(s *Session, handle native.PreparedHandle) *Prepared {
	return &Prepared{
		driver: s.driver,
		handle: handle,
		config: s.config,
		query:  s.driver.PreparedQuery(handle),
	}
}

// Query returns the prepared statement's CQL text.
func (p *Prepared) Query() string {
	return p.query
}

// Bind creates a new statement from the prepared statement.
//
// The statement is owned by the caller and independent of p.
//
// Returns:
//   - *Statement: A new statement
//   - error: ErrResourceReleased if p was freed
func (p *Prepared) Bind() (*Statement, error) {
	if p.released.Load() {
		return nil, types.ErrResourceReleased
	}

	sh := p.driver.PreparedBind(p.handle)
	if sh == 0 {
		return nil, types.ErrorFromStatus(types.LibBadParams, "prepared statement is not bindable")
	}

	return newStatement(p.driver, p.config, sh, p.query), nil
}

// Free releases the native prepared statement.
//
// Statements already created by Bind are unaffected.
//
// Returns:
//   - error: ErrResourceReleased if already released
func (p *Prepared) Free() error {
	if !p.released.CompareAndSwap(false, true) {
		return types.ErrResourceReleased
	}
	p.driver.PreparedFree(p.handle)
	p.config.Metrics.IncReleased(types.ResourcePrepared)

	return nil
}

// Batch owns one native batch until it is executed or freed.
//
// Session.ExecuteBatch consumes the batch.
type Batch struct {
	driver   native.Driver
	handle   native.BatchHandle
	config   *Config
	kind     BatchType
	size     atomic.Int64
	released atomic.Bool
}

func newBatch(driver native.Driver, config *Config, handle native.BatchHandle, kind BatchType) *Batch {
	return &Batch{
		driver: driver,
		handle: handle,
		config: config,
		kind:   kind,
	}
}

// Kind returns the batch type.
func (b *Batch) Kind() BatchType {
	return b.kind
}

// Len returns the number of statements added.
func (b *Batch) Len() int {
	return int(b.size.Load())
}

// Add copies stmt into the batch. The statement stays owned by the caller.
//
// Returns:
//   - error: ErrResourceReleased if either side was freed, or the native status
func (b *Batch) Add(stmt *Statement) error {
	if b.released.Load() {
		return types.ErrResourceReleased
	}
	sh, err := stmt.live()
	if err != nil {
		return err
	}
	if err := types.ErrorFromStatus(b.driver.BatchAddStatement(b.handle, sh), ""); err != nil {
		return err
	}
	b.size.Add(1)

	return nil
}

// SetConsistency sets the consistency level for the whole batch.
func (b *Batch) SetConsistency(c Consistency) error {
	if b.released.Load() {
		return types.ErrResourceReleased
	}

	return types.ErrorFromStatus(b.driver.BatchSetConsistency(b.handle, c), "")
}

// SetTimestamp sets the write timestamp for every statement in the batch.
func (b *Batch) SetTimestamp(ts int64) error {
	if b.released.Load() {
		return types.ErrResourceReleased
	}

	return types.ErrorFromStatus(b.driver.BatchSetTimestamp(b.handle, ts), "")
}

// take marks the batch consumed and returns its handle for submission.
func (b *Batch) take() (native.BatchHandle, error) {
	if b == nil || !b.released.CompareAndSwap(false, true) {
		return 0, types.ErrResourceReleased
	}

	return b.handle, nil
}

func (b *Batch) releaseTaken(h native.BatchHandle) {
	b.driver.BatchFree(h)
	b.config.Metrics.IncReleased(types.ResourceBatch)
}

// Free releases a batch that will not be executed.
//
// Returns:
//   - error: ErrResourceReleased if already executed or released
func (b *Batch) Free() error {
	h, err := b.take()
	if err != nil {
		return err
	}
	b.releaseTaken(h)

	return nil
}
