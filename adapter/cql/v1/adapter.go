package v1

import (
	"sync"

	"github.com/gocql/gocql"

	"github.com/arloliu/cqlbridge/adapter/cql"
	"github.com/arloliu/cqlbridge/internal/handle"
	"github.com/arloliu/cqlbridge/native"
	"github.com/arloliu/cqlbridge/types"
)

// knownErrors maps gocql sentinel errors onto native statuses.
var knownErrors = map[error]types.Status{
	gocql.ErrNoConnections:        types.LibNoHostsAvailable,
	gocql.ErrNoConnectionsStarted: types.LibNoHostsAvailable,
	gocql.ErrNoHosts:              types.LibNoHostsAvailable,
	gocql.ErrSessionClosed:        types.LibNoHostsAvailable,
	gocql.ErrTimeoutNoResponse:    types.LibRequestTimedOut,
	gocql.ErrKeyspaceDoesNotExist: types.LibUnableToSetKeyspace,
}

// session is the object behind a session handle.
type session struct {
	mu    sync.Mutex
	conn  *gocql.Session
	freed bool
}

// current returns the live gocql session, or nil if not connected.
func (s *session) current() *gocql.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn
}

// Driver implements native.Driver on top of gocql v1.
//
// Each session handle owns at most one gocql.Session, created by
// SessionConnect and closed by SessionClose or SessionFree. Blocking gocql
// calls run on their own goroutine and resolve a future handle.
type Driver struct {
	*cql.Base

	sessions *handle.Table[*session]
	clusters *handle.Table[types.ClusterConfig]
}

var _ native.Driver = (*Driver)(nil)

// NewDriver creates a gocql v1 native driver.
//
// Returns:
//   - *Driver: A driver with no live handles
func NewDriver() *Driver {
	return &Driver{
		Base:     cql.NewBase(),
		sessions: handle.NewTable[*session](),
		clusters: handle.NewTable[types.ClusterConfig](),
	}
}

// ClusterNew stores a copy of cfg.
func (d *Driver) ClusterNew(cfg types.ClusterConfig) (native.ClusterHandle, types.Status) {
	if len(cfg.ContactPoints) == 0 {
		return 0, types.LibBadParams
	}
	cfg.ContactPoints = append([]string(nil), cfg.ContactPoints...)

	return native.ClusterHandle(d.clusters.Put(cfg)), types.StatusOK
}

// ClusterFree releases a cluster configuration.
func (d *Driver) ClusterFree(c native.ClusterHandle) {
	if _, ok := d.clusters.Release(uint64(c)); !ok {
		d.CountInvalidFree()

		return
	}
	d.CountRelease(types.ResourceCluster)
}

// SessionNew creates a disconnected session.
func (d *Driver) SessionNew() native.SessionHandle {
	return native.SessionHandle(d.sessions.Put(&session{}))
}

// SessionFree releases a session, closing its gocql session if connected.
func (d *Driver) SessionFree(s native.SessionHandle) {
	rec, ok := d.sessions.Release(uint64(s))
	if !ok {
		d.CountInvalidFree()

		return
	}

	rec.mu.Lock()
	rec.freed = true
	if rec.conn != nil {
		rec.conn.Close()
		rec.conn = nil
	}
	rec.mu.Unlock()
	d.CountRelease(types.ResourceSession)
}

// SessionClose closes the session's gocql session.
func (d *Driver) SessionClose(s native.SessionHandle) native.FutureHandle {
	rec, ok := d.sessions.Get(uint64(s))
	if !ok {
		return d.Resolved(cql.Failed(types.LibBadParams, "invalid session handle"))
	}

	return d.Go(func() cql.Outcome {
		rec.mu.Lock()
		defer rec.mu.Unlock()

		if rec.conn == nil {
			return cql.Failed(types.LibUnableToClose, "session is not connected")
		}
		rec.conn.Close()
		rec.conn = nil

		return cql.Outcome{}
	})
}

// SessionConnect connects the session.
func (d *Driver) SessionConnect(s native.SessionHandle, c native.ClusterHandle) native.FutureHandle {
	return d.connect(s, c, "")
}

// SessionConnectKeyspace connects the session and sets its keyspace.
func (d *Driver) SessionConnectKeyspace(s native.SessionHandle, c native.ClusterHandle, keyspace string) native.FutureHandle {
	return d.connect(s, c, keyspace)
}

func (d *Driver) connect(s native.SessionHandle, c native.ClusterHandle, keyspace string) native.FutureHandle {
	rec, ok := d.sessions.Get(uint64(s))
	if !ok {
		return d.Resolved(cql.Failed(types.LibBadParams, "invalid session handle"))
	}
	cfg, ok := d.clusters.Get(uint64(c))
	if !ok {
		return d.Resolved(cql.Failed(types.LibBadParams, "invalid cluster handle"))
	}
	cluster := NewClusterConfig(cfg, keyspace)

	return d.Go(func() cql.Outcome {
		rec.mu.Lock()
		defer rec.mu.Unlock()

		if rec.freed {
			// a connect that starts after SessionFree must not leave a live pool behind
			return cql.Failed(types.LibUnableToConnect, "session was freed")
		}
		if rec.conn != nil {
			return cql.Failed(types.LibUnableToConnect, "session is already connected")
		}

		conn, err := cluster.CreateSession()
		if err != nil {
			return cql.Failed(cql.StatusFromError(err, types.LibUnableToConnect, knownErrors))
		}
		rec.conn = conn

		return cql.Outcome{}
	})
}

// SessionPrepare registers a prepared statement.
//
// gocql prepares statements lazily on first execution and caches them per
// connection, so the future resolves without a round trip. A statement the
// server rejects fails when it is executed.
func (d *Driver) SessionPrepare(s native.SessionHandle, query string) native.FutureHandle {
	if _, o, ok := d.conn(s); !ok {
		return d.Resolved(o)
	}

	return d.Resolved(cql.Outcome{Prepared: true, PreparedCQL: query})
}

// SessionExecute executes a copy of the statement.
func (d *Driver) SessionExecute(s native.SessionHandle, st native.StatementHandle) native.FutureHandle {
	conn, o, ok := d.conn(s)
	if !ok {
		return d.Resolved(o)
	}
	rec, ok := d.Statement(st)
	if !ok {
		return d.Resolved(cql.Failed(types.LibBadParams, "invalid statement handle"))
	}

	return d.Go(func() cql.Outcome {
		return execute(conn, rec)
	})
}

// SessionExecuteBatch executes a copy of the batch.
func (d *Driver) SessionExecuteBatch(s native.SessionHandle, b native.BatchHandle) native.FutureHandle {
	conn, o, ok := d.conn(s)
	if !ok {
		return d.Resolved(o)
	}
	rec, ok := d.Batch(b)
	if !ok {
		return d.Resolved(cql.Failed(types.LibBadParams, "invalid batch handle"))
	}
	if !rec.Kind.Valid() {
		return d.Resolved(cql.Failed(types.LibBadParams, "invalid batch type "+rec.Kind.String()))
	}

	return d.Go(func() cql.Outcome {
		return executeBatch(conn, rec)
	})
}

// SessionGetSchema reads keyspace metadata from the cluster.
//
// A session that is not connected yields an empty snapshot. Keyspaces
// whose metadata cannot be read are left out.
func (d *Driver) SessionGetSchema(s native.SessionHandle) types.SchemaMeta {
	meta := types.SchemaMeta{Keyspaces: map[string]types.KeyspaceMeta{}}

	conn, _, ok := d.conn(s)
	if !ok {
		return meta
	}

	var name string
	iter := conn.Query(cql.KeyspacesQuery).Iter()
	names := make([]string, 0, iter.NumRows())
	for iter.Scan(&name) {
		names = append(names, name)
	}
	if err := iter.Close(); err != nil {
		return meta
	}

	for _, name := range names {
		km, err := conn.KeyspaceMetadata(name)
		if err != nil {
			continue
		}
		meta.Keyspaces[name] = FromKeyspaceMetadata(km)
	}

	return meta
}

// conn returns the connected gocql session behind s, or the outcome to
// report when there is none.
func (d *Driver) conn(s native.SessionHandle) (*gocql.Session, cql.Outcome, bool) {
	rec, ok := d.sessions.Get(uint64(s))
	if !ok {
		return nil, cql.Failed(types.LibBadParams, "invalid session handle"), false
	}
	conn := rec.current()
	if conn == nil {
		return nil, cql.Failed(types.LibNoHostsAvailable, "session is not connected"), false
	}

	return conn, cql.Outcome{}, true
}

// SessionCount returns the number of live session handles.
func (d *Driver) SessionCount() int {
	return d.sessions.Len()
}

func execute(conn *gocql.Session, rec cql.StatementRecord) cql.Outcome {
	q := conn.Query(rec.Query, rec.Args(gocql.UnsetValue)...)
	if rec.Consistency != nil {
		q = q.Consistency(ToGocqlConsistency(*rec.Consistency))
	}
	if rec.SerialConsistency != nil {
		q = q.SerialConsistency(ToGocqlSerialConsistency(*rec.SerialConsistency))
	}
	if rec.PageSize > 0 {
		// an explicit page state turns off gocql's automatic paging
		q = q.PageSize(rec.PageSize).PageState(rec.PagingState)
	}
	if rec.Timestamp != nil {
		q = q.WithTimestamp(*rec.Timestamp)
	}
	defer q.Release()

	iter := q.Iter()
	rows, err := iter.SliceMap()
	columns := iter.Columns()
	pageState := iter.PageState()
	warnings := iter.Warnings()
	if closeErr := iter.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return cql.Failed(cql.StatusFromError(err, types.LibInternalError, knownErrors))
	}

	rs := &types.ResultSet{
		Columns:  FromColumnInfo(columns),
		Rows:     rows,
		Warnings: warnings,
	}
	if rec.PageSize > 0 && len(pageState) > 0 {
		rs.PagingState = append([]byte(nil), pageState...)
	}

	return cql.Outcome{Result: rs}
}

func executeBatch(conn *gocql.Session, rec cql.BatchRecord) cql.Outcome {
	b := conn.NewBatch(ToGocqlBatchType(rec.Kind))
	for _, entry := range rec.Entries {
		b.Query(entry.Query, entry.Args(gocql.UnsetValue)...)
	}
	if rec.Consistency != nil {
		b.SetConsistency(ToGocqlConsistency(*rec.Consistency))
	}
	if rec.Timestamp != nil {
		b.WithTimestamp(*rec.Timestamp)
	}

	if err := conn.ExecuteBatch(b); err != nil {
		return cql.Failed(cql.StatusFromError(err, types.LibInternalError, knownErrors))
	}

	return cql.Outcome{Result: &types.ResultSet{}}
}
