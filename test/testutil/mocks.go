package testutil

import (
	"fmt"
	"sync"

	"github.com/arloliu/cqlbridge/adapter/cql"
	"github.com/arloliu/cqlbridge/internal/handle"
	"github.com/arloliu/cqlbridge/native"
	"github.com/arloliu/cqlbridge/types"
)

// mockSession is the object behind a mock session handle.
type mockSession struct {
	connected bool
	keyspace  string
}

// MockDriver is an in-memory native.Driver for unit tests.
//
// It keeps real handle tables, so double frees and leaks are observable
// through Released, InvalidFrees and Live. Outcomes are configured through
// the exported fields, which must be set before the driver is used.
//
// Asynchronous operations resolve on their own goroutine. When Gate is
// non-nil they block until it is closed, which lets tests observe pending
// futures.
type MockDriver struct {
	*cql.Base

	// Statuses reported by each operation. The zero value is success.
	ClusterStatus types.Status
	ConnectStatus types.Status
	CloseStatus   types.Status
	PrepareStatus types.Status
	ExecuteStatus types.Status
	BatchStatus   types.Status

	// ErrorMessage accompanies every configured failure status.
	ErrorMessage string

	// Result is returned by successful executes. Nil yields an empty result.
	Result *types.ResultSet

	// Schema is returned for connected sessions.
	Schema types.SchemaMeta

	// Gate, when non-nil, holds every asynchronous operation until closed.
	Gate chan struct{}

	// OnPrepare overrides the outcome of prepares on a connected session.
	OnPrepare func(query string) cql.Outcome

	// OnExecute overrides the outcome of executes on a connected session.
	OnExecute func(rec cql.StatementRecord) cql.Outcome

	// OnBatch overrides the outcome of batches on a connected session.
	OnBatch func(rec cql.BatchRecord) cql.Outcome

	mu       sync.Mutex
	calls    map[string]int
	sessions *handle.Table[*mockSession]
	clusters *handle.Table[types.ClusterConfig]
}

// Compile-time assertion that MockDriver implements native.Driver.
var _ native.Driver = (*MockDriver)(nil)

// NewMockDriver creates a mock driver where every operation succeeds.
func NewMockDriver() *MockDriver {
	return &MockDriver{
		Base:     cql.NewBase(),
		calls:    make(map[string]int),
		sessions: handle.NewTable[*mockSession](),
		clusters: handle.NewTable[types.ClusterConfig](),
	}
}

// Count returns how many times the named driver function was called.
func (m *MockDriver) Count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls[name]
}

// Connected reports whether the session handle is connected.
func (m *MockDriver) Connected(s native.SessionHandle) bool {
	rec, ok := m.sessions.Get(uint64(s))
	if !ok {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return rec.connected
}

// Keyspace returns the keyspace the session connected with.
func (m *MockDriver) Keyspace(s native.SessionHandle) string {
	rec, ok := m.sessions.Get(uint64(s))
	if !ok {
		return ""
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return rec.keyspace
}

// LiveSessions returns the number of session handles not yet freed.
func (m *MockDriver) LiveSessions() int {
	return m.sessions.Len()
}

// LiveClusters returns the number of cluster handles not yet freed.
func (m *MockDriver) LiveClusters() int {
	return m.clusters.Len()
}

func (m *MockDriver) record(name string) {
	m.mu.Lock()
	m.calls[name]++
	m.mu.Unlock()
}

func (m *MockDriver) wait(gate chan struct{}) {
	if gate != nil {
		<-gate
	}
}

func (m *MockDriver) failure(status types.Status) cql.Outcome {
	return cql.Failed(status, m.ErrorMessage)
}

// ----------------------
// Cluster configuration
// ----------------------

func (m *MockDriver) ClusterNew(cfg types.ClusterConfig) (native.ClusterHandle, types.Status) {
	m.record("ClusterNew")
	if !m.ClusterStatus.OK() {
		return 0, m.ClusterStatus
	}

	return native.ClusterHandle(m.clusters.Put(cfg)), types.StatusOK
}

func (m *MockDriver) ClusterFree(c native.ClusterHandle) {
	m.record("ClusterFree")
	if _, ok := m.clusters.Release(uint64(c)); !ok {
		m.CountInvalidFree()

		return
	}
	m.CountRelease(types.ResourceCluster)
}

// ----------------------
// Session lifecycle
// ----------------------

func (m *MockDriver) SessionNew() native.SessionHandle {
	m.record("SessionNew")

	return native.SessionHandle(m.sessions.Put(&mockSession{}))
}

func (m *MockDriver) SessionFree(s native.SessionHandle) {
	m.record("SessionFree")
	if _, ok := m.sessions.Release(uint64(s)); !ok {
		m.CountInvalidFree()

		return
	}
	m.CountRelease(types.ResourceSession)
}

func (m *MockDriver) SessionClose(s native.SessionHandle) native.FutureHandle {
	m.record("SessionClose")
	rec, ok := m.sessions.Get(uint64(s))
	if !ok {
		return m.Resolved(cql.Failed(types.LibBadParams, "invalid session handle"))
	}
	status, gate := m.CloseStatus, m.Gate

	return m.Go(func() cql.Outcome {
		m.wait(gate)
		if !status.OK() {
			return m.failure(status)
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if !rec.connected {
			return cql.Failed(types.LibUnableToClose, "session is not connected")
		}
		rec.connected = false

		return cql.Outcome{}
	})
}

func (m *MockDriver) SessionConnect(s native.SessionHandle, c native.ClusterHandle) native.FutureHandle {
	m.record("SessionConnect")

	return m.connect(s, c, "")
}

func (m *MockDriver) SessionConnectKeyspace(s native.SessionHandle, c native.ClusterHandle, keyspace string) native.FutureHandle {
	m.record("SessionConnectKeyspace")

	return m.connect(s, c, keyspace)
}

func (m *MockDriver) connect(s native.SessionHandle, c native.ClusterHandle, keyspace string) native.FutureHandle {
	rec, ok := m.sessions.Get(uint64(s))
	if !ok {
		return m.Resolved(cql.Failed(types.LibBadParams, "invalid session handle"))
	}
	if _, ok := m.clusters.Get(uint64(c)); !ok {
		return m.Resolved(cql.Failed(types.LibBadParams, "invalid cluster handle"))
	}
	status, gate := m.ConnectStatus, m.Gate

	return m.Go(func() cql.Outcome {
		m.wait(gate)
		if !status.OK() {
			return m.failure(status)
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if rec.connected {
			return cql.Failed(types.LibUnableToConnect, "session is already connected")
		}
		rec.connected = true
		rec.keyspace = keyspace

		return cql.Outcome{}
	})
}

// ----------------------
// Query submission
// ----------------------

// connected reports whether s is connected, or the outcome to report if not.
func (m *MockDriver) connected(s native.SessionHandle) (cql.Outcome, bool) {
	if !m.Connected(s) {
		return cql.Failed(types.LibNoHostsAvailable, "session is not connected"), false
	}

	return cql.Outcome{}, true
}

func (m *MockDriver) SessionPrepare(s native.SessionHandle, query string) native.FutureHandle {
	m.record("SessionPrepare")
	status, gate, hook := m.PrepareStatus, m.Gate, m.OnPrepare

	return m.Go(func() cql.Outcome {
		m.wait(gate)
		if o, ok := m.connected(s); !ok {
			return o
		}
		if hook != nil {
			return hook(query)
		}
		if !status.OK() {
			return m.failure(status)
		}

		return cql.Outcome{Prepared: true, PreparedCQL: query}
	})
}

// SessionExecute executes a copy of the statement. A statement whose bind
// slot count differs from the markers in its query fails the way a server
// rejects it.
func (m *MockDriver) SessionExecute(s native.SessionHandle, st native.StatementHandle) native.FutureHandle {
	m.record("SessionExecute")
	rec, ok := m.Statement(st)
	if !ok {
		return m.Resolved(cql.Failed(types.LibBadParams, "invalid statement handle"))
	}
	status, gate, result, hook := m.ExecuteStatus, m.Gate, m.Result, m.OnExecute

	return m.Go(func() cql.Outcome {
		m.wait(gate)
		if o, ok := m.connected(s); !ok {
			return o
		}
		if hook != nil {
			return hook(rec)
		}
		if !status.OK() {
			return m.failure(status)
		}
		if want := cql.CountMarkers(rec.Query); want != len(rec.Values) {
			return cql.Failed(types.ServerInvalidQuery,
				fmt.Sprintf("Invalid amount of bind variables: expected %d, got %d", want, len(rec.Values)))
		}
		if result == nil {
			return cql.Outcome{Result: &types.ResultSet{}}
		}

		return cql.Outcome{Result: result}
	})
}

func (m *MockDriver) SessionExecuteBatch(s native.SessionHandle, b native.BatchHandle) native.FutureHandle {
	m.record("SessionExecuteBatch")
	rec, ok := m.Batch(b)
	if !ok {
		return m.Resolved(cql.Failed(types.LibBadParams, "invalid batch handle"))
	}
	status, gate, hook := m.BatchStatus, m.Gate, m.OnBatch

	return m.Go(func() cql.Outcome {
		m.wait(gate)
		if o, ok := m.connected(s); !ok {
			return o
		}
		if !rec.Kind.Valid() {
			return cql.Failed(types.LibBadParams, "invalid batch type")
		}
		if hook != nil {
			return hook(rec)
		}
		if !status.OK() {
			return m.failure(status)
		}

		return cql.Outcome{Result: &types.ResultSet{}}
	})
}

// ----------------------
// Metadata
// ----------------------

func (m *MockDriver) SessionGetSchema(s native.SessionHandle) types.SchemaMeta {
	m.record("SessionGetSchema")
	if !m.Connected(s) {
		return types.SchemaMeta{Keyspaces: map[string]types.KeyspaceMeta{}}
	}

	return m.Schema
}
