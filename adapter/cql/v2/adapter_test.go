package v2_test

import (
	"testing"
	"time"

	gocql "github.com/apache/cassandra-gocql-driver/v2"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/cqlbridge/adapter/cql"
	v2 "github.com/arloliu/cqlbridge/adapter/cql/v2" //nolint:revive // required for v2_test package
	"github.com/arloliu/cqlbridge/native"
	"github.com/arloliu/cqlbridge/types"
)

// TestDriverImplementsInterface verifies that v2.Driver implements native.Driver.
func TestDriverImplementsInterface(t *testing.T) {
	// This is a compile-time check
	var _ native.Driver = (*v2.Driver)(nil)
}

// TestBatchTypeConstants verifies batch type constants match gocql.
func TestBatchTypeConstants(t *testing.T) {
	require.Equal(t, cql.BatchType(gocql.LoggedBatch), cql.LoggedBatch)
	require.Equal(t, cql.BatchType(gocql.UnloggedBatch), cql.UnloggedBatch)
	require.Equal(t, cql.BatchType(gocql.CounterBatch), cql.CounterBatch)
}

// TestConsistencyConstants verifies consistency constants match gocql.
func TestConsistencyConstants(t *testing.T) {
	require.Equal(t, cql.Consistency(gocql.Any), cql.Any)
	require.Equal(t, cql.Consistency(gocql.One), cql.One)
	require.Equal(t, cql.Consistency(gocql.Two), cql.Two)
	require.Equal(t, cql.Consistency(gocql.Three), cql.Three)
	require.Equal(t, cql.Consistency(gocql.Quorum), cql.Quorum)
	require.Equal(t, cql.Consistency(gocql.All), cql.All)
	require.Equal(t, cql.Consistency(gocql.LocalQuorum), cql.LocalQuorum)
	require.Equal(t, cql.Consistency(gocql.EachQuorum), cql.EachQuorum)
	require.Equal(t, cql.Consistency(gocql.LocalOne), cql.LocalOne)
	require.Equal(t, cql.Consistency(gocql.Serial), cql.Serial)
	require.Equal(t, cql.Consistency(gocql.LocalSerial), cql.LocalSerial)
}

func TestClusterNewRequiresContactPoints(t *testing.T) {
	d := v2.NewDriver()

	h, status := d.ClusterNew(types.ClusterConfig{})
	require.Zero(t, h)
	require.Equal(t, types.LibBadParams, status)

	h, status = d.ClusterNew(types.ClusterConfig{ContactPoints: []string{"127.0.0.1"}})
	require.NotZero(t, h)
	require.Equal(t, types.StatusOK, status)

	d.ClusterFree(h)
	d.ClusterFree(h)
	require.Equal(t, int64(1), d.Released(types.ResourceCluster))
	require.Equal(t, int64(1), d.InvalidFrees())
}

func TestDisconnectedSession(t *testing.T) {
	d := v2.NewDriver()
	s := d.SessionNew()

	fh := d.SessionClose(s)
	require.Equal(t, types.LibUnableToClose, d.FutureErrorCode(fh))
	d.FutureFree(fh)

	fh = d.SessionPrepare(s, "SELECT * FROM t")
	require.Equal(t, types.LibNoHostsAvailable, d.FutureErrorCode(fh))
	require.Zero(t, d.FutureGetPrepared(fh))
	d.FutureFree(fh)

	st := d.StatementNew("SELECT * FROM t", 0)
	fh = d.SessionExecute(s, st)
	require.Equal(t, types.LibNoHostsAvailable, d.FutureErrorCode(fh))
	require.Nil(t, d.FutureGetResult(fh))
	d.FutureFree(fh)
	d.StatementFree(st)

	require.Empty(t, d.SessionGetSchema(s).Keyspaces)
	require.Nil(t, v2.UnwrapSession(d, s))

	d.SessionFree(s)
	require.Equal(t, int64(1), d.Released(types.ResourceSession))
	require.Zero(t, d.SessionCount())
	require.Zero(t, d.Live(types.ResourceFuture))
	require.Zero(t, d.Live(types.ResourceStatement))
}

func TestInvalidSessionHandle(t *testing.T) {
	d := v2.NewDriver()

	fh := d.SessionConnect(99, 1)
	require.Equal(t, types.LibBadParams, d.FutureErrorCode(fh))
	d.FutureFree(fh)

	d.SessionFree(99)
	require.Equal(t, int64(1), d.InvalidFrees())
}

func TestConnectUnreachableCluster(t *testing.T) {
	if testing.Short() {
		t.Skip("dials a local port")
	}

	d := v2.NewDriver()
	cluster, status := d.ClusterNew(types.ClusterConfig{
		ContactPoints:  []string{"127.0.0.1"},
		Port:           1,
		ConnectTimeout: 200 * time.Millisecond,
		RequestTimeout: 200 * time.Millisecond,
	})
	require.Equal(t, types.StatusOK, status)

	s := d.SessionNew()
	fh := d.SessionConnect(s, cluster)
	d.ClusterFree(cluster)

	code := d.FutureErrorCode(fh)
	require.False(t, code.OK())
	require.Equal(t, types.SourceLib, code.Source())
	require.NotEmpty(t, d.FutureErrorMessage(fh))
	d.FutureFree(fh)

	d.SessionFree(s)
	require.Zero(t, d.InvalidFrees())
}

func TestNewClusterConfig(t *testing.T) {
	cfg := types.ClusterConfig{
		ContactPoints:   []string{"10.0.0.1", "10.0.0.2"},
		Port:            9142,
		ProtocolVersion: 4,
		Consistency:     types.LocalQuorum,
		ConnectTimeout:  3 * time.Second,
		RequestTimeout:  7 * time.Second,
		NumConnsPerHost: 2,
		Username:        "cassandra",
		Password:        "secret",
		LocalDC:         "dc1",
	}

	cluster := v2.NewClusterConfig(cfg, "app")
	require.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cluster.Hosts)
	require.Equal(t, "app", cluster.Keyspace)
	require.Equal(t, 9142, cluster.Port)
	require.Equal(t, 4, cluster.ProtoVersion)
	require.Equal(t, gocql.LocalQuorum, cluster.Consistency)
	require.Equal(t, 3*time.Second, cluster.ConnectTimeout)
	require.Equal(t, 7*time.Second, cluster.Timeout)
	require.Equal(t, 2, cluster.NumConns)
	require.Equal(t, gocql.PasswordAuthenticator{Username: "cassandra", Password: "secret"}, cluster.Authenticator)
	require.NotNil(t, cluster.PoolConfig.HostSelectionPolicy)
}

func TestFromKeyspaceMetadata(t *testing.T) {
	id := &gocql.ColumnMetadata{Name: "id", Kind: gocql.ColumnPartitionKey}
	ts := &gocql.ColumnMetadata{Name: "ts", Kind: gocql.ColumnClusteringKey}
	val := &gocql.ColumnMetadata{Name: "val", Kind: gocql.ColumnRegular}

	km := &gocql.KeyspaceMetadata{
		Name:          "app",
		DurableWrites: true,
		StrategyClass: "org.apache.cassandra.locator.SimpleStrategy",
		Tables: map[string]*gocql.TableMetadata{
			"events": {
				Name:              "events",
				PartitionKey:      []*gocql.ColumnMetadata{id},
				ClusteringColumns: []*gocql.ColumnMetadata{ts},
				Columns:           map[string]*gocql.ColumnMetadata{"id": id, "ts": ts, "val": val},
			},
		},
	}

	meta := v2.FromKeyspaceMetadata(km)
	require.Equal(t, "app", meta.Name)
	require.True(t, meta.DurableWrites)
	require.Contains(t, meta.StrategyClass, "SimpleStrategy")

	table, ok := meta.Tables["events"]
	require.True(t, ok)
	require.Equal(t, []string{"id"}, table.PartitionKey)
	require.Equal(t, []string{"ts"}, table.ClusteringColumns)
	require.Len(t, table.Columns, 3)
	require.Equal(t, "val", table.Columns["val"].Name)
}
