package cqlbridge

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/arloliu/cqlbridge/internal/logging"
	"github.com/arloliu/cqlbridge/native"
	"github.com/arloliu/cqlbridge/types"
)

// Session lifecycle states.
const (
	sessionOpen int32 = iota
	sessionMoved
	sessionReleased
)

// Session owns one native session.
//
// A session starts disconnected. Connect moves it into a ConnectFuture and
// hands it back when that future resolves. Free releases the native session;
// Go has no destructors, so every session must be freed explicitly, usually
// with defer right after NewSession.
//
// # Thread Safety
//
// Submission methods (Prepare, Execute, ExecuteStatement, ExecuteBatch,
// Close, Schema) may be called from multiple goroutines. This relies on the
// native driver synchronizing session-level calls internally; the wrapper
// adds no locks. The consuming transitions, Connect and Free, must be driven
// by a single owner and must not race with each other.
type Session struct {
	driver native.Driver
	handle native.SessionHandle
	config *Config
	log    types.Logger
	id     uuid.UUID
	state  atomic.Int32
}

// NewSession acquires a new, disconnected native session.
//
// It does not contact the network and has no failure mode. It panics with
// ErrNilDriver if driver is nil.
//
// Parameters:
//   - driver: The native driver
//   - opts: Optional configuration options
//
// Returns:
//   - *Session: A disconnected session
func NewSession(driver native.Driver, opts ...Option) *Session {
	if driver == nil {
		panic(types.ErrNilDriver)
	}

	s := &Session{
		driver: driver,
		handle: driver.SessionNew(),
		config: newConfig(opts),
		id:     uuid.New(),
	}
	s.log = logging.With(s.config.Logger, "session", s.id.String())
	s.log.Debug("session created")

	return s
}

// ID returns the session's identifier used in log messages.
func (s *Session) ID() string {
	return s.id.String()
}

// Handle returns the underlying native session handle.
//
// The handle stays owned by the session; do not free it.
func (s *Session) Handle() native.SessionHandle {
	return s.handle
}

// usable reports why the session cannot issue operations, if it cannot.
func (s *Session) usable() error {
	switch s.state.Load() {
	case sessionMoved:
		return types.ErrSessionMoved
	case sessionReleased:
		return types.ErrResourceReleased
	}

	return nil
}

// Connect connects the session to the cluster described by cluster.
//
// Both the session and the cluster are consumed: until the returned future
// resolves, session operations fail with ErrSessionMoved, and the cluster
// cannot be used again. Wait hands the session back on success and on
// failure; the cluster is released when the future resolves.
//
// Parameters:
//   - cluster: Cluster configuration (consumed)
//
// Returns:
//   - *ConnectFuture: Future yielding the session
func (s *Session) Connect(cluster *Cluster) *ConnectFuture {
	return s.connect(cluster, "", false)
}

// ConnectKeyspace connects the session and sets its keyspace.
//
// It behaves like Connect. The keyspace name is validated before anything is
// submitted; on an encoding error neither the session nor the cluster is
// consumed.
//
// Parameters:
//   - cluster: Cluster configuration (consumed)
//   - keyspace: Keyspace to use after connecting
//
// Returns:
//   - *ConnectFuture: Future yielding the session
//   - error: *types.EncodingError if keyspace cannot be encoded
func (s *Session) ConnectKeyspace(cluster *Cluster, keyspace string) (*ConnectFuture, error) {
	if err := s.checkText("keyspace", keyspace); err != nil {
		return nil, err
	}

	return s.connect(cluster, keyspace, true), nil
}

func (s *Session) connect(cluster *Cluster, keyspace string, withKeyspace bool) *ConnectFuture {
	cf := &ConnectFuture{session: s}

	if !s.state.CompareAndSwap(sessionOpen, sessionMoved) {
		err := s.usable()
		if err == nil {
			err = types.ErrSessionMoved
		}
		cf.future = failedFuture[Void](s, types.OpConnect, err)

		return cf
	}

	clusterHandle, err := cluster.take()
	if err != nil {
		s.state.Store(sessionOpen)
		cf.future = failedFuture[Void](s, types.OpConnect, err)

		return cf
	}
	cf.owns = true
	cf.cluster = cluster

	var fh native.FutureHandle
	if withKeyspace {
		fh = s.driver.SessionConnectKeyspace(s.handle, clusterHandle, keyspace)
	} else {
		fh = s.driver.SessionConnect(s.handle, clusterHandle)
	}
	s.log.Debug("connect submitted", "keyspace", keyspace)
	cf.future = newFuture[Void](s, fh, types.OpConnect, nil)

	return cf
}

// Close begins an asynchronous shutdown of the session's connections.
//
// Close does not release the native session; Free does. The returned future
// reports whether shutdown succeeded.
//
// Returns:
//   - *CloseFuture: Future resolving when the session is closed
func (s *Session) Close() *CloseFuture {
	if err := s.usable(); err != nil {
		return failedFuture[Void](s, types.OpClose, err)
	}

	return newFuture[Void](s, s.driver.SessionClose(s.handle), types.OpClose, nil)
}

// Prepare prepares a statement on the cluster.
//
// The only synchronous failure is a query that cannot be encoded for the
// native driver; it is reported before any future exists and never reaches
// the driver. Native failures are reported by Wait. Whether the server
// accepts the statement depends on the driver: the gocql adapters prepare
// lazily, so Wait succeeds on any connected session and a statement the
// server rejects fails on its first execute.
//
// Parameters:
//   - query: CQL statement with ? placeholders
//
// Returns:
//   - *PreparedFuture: Future yielding the prepared statement
//   - error: *types.EncodingError if query cannot be encoded
func (s *Session) Prepare(query string) (*PreparedFuture, error) {
	if err := s.checkText("query", query); err != nil {
		return nil, err
	}
	if err := s.usable(); err != nil {
		return failedFuture[*Prepared](s, types.OpPrepare, err), nil
	}

	fh := s.driver.SessionPrepare(s.handle, query)

	return newFuture(s, fh, types.OpPrepare, func(h native.FutureHandle) (*Prepared, error) {
		ph := s.driver.FutureGetPrepared(h)
		if ph == 0 {
			return nil, types.ErrorFromStatus(types.LibInvalidFutureType, "future carries no prepared statement")
		}

		return newPrepared(s, ph), nil
	}), nil
}

// Execute builds an ad hoc statement and executes it.
//
// paramCount declares the number of bind slots. It is not checked against
// the placeholders in query; a mismatch is reported by the native driver
// when the future is waited on. Encoding errors are also reported by Wait,
// and such a query never reaches the driver.
//
// Parameters:
//   - query: CQL statement
//   - paramCount: Number of bound parameters
//
// Returns:
//   - *ResultFuture: Future yielding the result page
func (s *Session) Execute(query string, paramCount int) *ResultFuture {
	if err := s.checkText("query", query); err != nil {
		return failedFuture[*Result](s, types.OpExecute, err)
	}
	if err := s.usable(); err != nil {
		return failedFuture[*Result](s, types.OpExecute, err)
	}

	sh := s.driver.StatementNew(query, paramCount)
	defer func() {
		s.driver.StatementFree(sh)
		s.config.Metrics.IncReleased(types.ResourceStatement)
	}()

	return s.execute(sh)
}

// ExecuteStatement executes a statement built by the caller.
//
// The statement is not consumed and may be executed again.
//
// Parameters:
//   - stmt: Statement to execute
//
// Returns:
//   - *ResultFuture: Future yielding the result page
func (s *Session) ExecuteStatement(stmt *Statement) *ResultFuture {
	sh, err := stmt.live()
	if err != nil {
		return failedFuture[*Result](s, types.OpExecute, err)
	}
	if err := s.usable(); err != nil {
		return failedFuture[*Result](s, types.OpExecute, err)
	}

	return s.execute(sh)
}

func (s *Session) execute(sh native.StatementHandle) *ResultFuture {
	fh := s.driver.SessionExecute(s.handle, sh)

	return newFuture(s, fh, types.OpExecute, s.extractResult)
}

// ExecuteBatch executes every statement in batch as one operation.
//
// The batch is consumed: its native resource is released once submitted,
// or immediately if the session cannot submit it.
//
// Parameters:
//   - batch: Batch to execute (consumed)
//
// Returns:
//   - *ResultFuture: Future yielding the batch result
func (s *Session) ExecuteBatch(batch *Batch) *ResultFuture {
	bh, err := batch.take()
	if err != nil {
		return failedFuture[*Result](s, types.OpBatch, err)
	}
	defer batch.releaseTaken(bh)

	if err := s.usable(); err != nil {
		return failedFuture[*Result](s, types.OpBatch, err)
	}
	fh := s.driver.SessionExecuteBatch(s.handle, bh)

	return newFuture(s, fh, types.OpBatch, s.extractResult)
}

func (s *Session) extractResult(h native.FutureHandle) (*Result, error) {
	rs := s.driver.FutureGetResult(h)
	if rs == nil {
		rs = &Result{}
	}

	return rs, nil
}

// Schema returns a snapshot of the session's schema metadata.
//
// There is no failure mode. The content for a session that is not connected
// is whatever the native driver reports, typically empty. A session that has
// been freed or is owned by a pending connect yields an empty snapshot.
//
// Returns:
//   - *Schema: Schema snapshot
func (s *Session) Schema() *Schema {
	if s.usable() != nil {
		return &Schema{Keyspaces: map[string]types.KeyspaceMeta{}}
	}

	meta := s.driver.SessionGetSchema(s.handle)
	if meta.Keyspaces == nil {
		meta.Keyspaces = map[string]types.KeyspaceMeta{}
	}

	return &meta
}

// NewStatement creates a statement with paramCount bind slots.
//
// Parameters:
//   - query: CQL statement with ? placeholders
//   - paramCount: Number of bind slots
//
// Returns:
//   - *Statement: A statement owned by the caller
//   - error: *types.EncodingError if query cannot be encoded
func (s *Session) NewStatement(query string, paramCount int) (*Statement, error) {
	if err := s.checkText("query", query); err != nil {
		return nil, err
	}

	return newStatement(s.driver, s.config, s.driver.StatementNew(query, paramCount), query), nil
}

// NewBatch creates an empty batch of the given kind.
//
// Parameters:
//   - kind: Batch type (Logged, Unlogged, or Counter)
//
// Returns:
//   - *Batch: A batch owned by the caller until executed
func (s *Session) NewBatch(kind BatchType) *Batch {
	return newBatch(s.driver, s.config, s.driver.BatchNew(kind), kind)
}

// Free releases the native session.
//
// The native resource is released exactly once: later calls return
// ErrResourceReleased. Free is refused with ErrSessionMoved while a connect
// future owns the session. Freeing a session that never connected issues no
// connect or close calls.
//
// Returns:
//   - error: nil on release, ErrSessionMoved or ErrResourceReleased otherwise
func (s *Session) Free() error {
	if !s.state.CompareAndSwap(sessionOpen, sessionReleased) {
		if err := s.usable(); err != nil {
			return err
		}

		return types.ErrResourceReleased
	}

	s.driver.SessionFree(s.handle)
	s.config.Metrics.IncReleased(types.ResourceSession)
	s.log.Debug("session freed")

	return nil
}

func (s *Session) checkText(field, text string) error {
	if err := checkText(field, text); err != nil {
		s.config.Metrics.IncEncodingError()

		return err
	}

	return nil
}
