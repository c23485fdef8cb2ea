package integration_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cqlbridge"
	"github.com/arloliu/cqlbridge/native"
	"github.com/arloliu/cqlbridge/test/testutil"
)

// TestMain skips the package in short mode or when SKIP_INTEGRATION_TESTS=1.
func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		return
	}

	if os.Getenv("SKIP_INTEGRATION_TESTS") == "1" {
		fmt.Println("Skipping integration tests (SKIP_INTEGRATION_TESTS=1)")

		return
	}

	os.Exit(m.Run())
}

// startCassandra starts a node for one test and registers its cleanup.
func startCassandra(t *testing.T) *testutil.CassandraContainer {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	container, err := testutil.StartCassandra(ctx, t, nil)
	if err != nil {
		t.Skipf("Cassandra container not available: %v", err)
	}

	return container
}

// connect creates a connected session on driver and frees it at cleanup.
func connect(t *testing.T, driver native.Driver, container *testutil.CassandraContainer) *cqlbridge.Session {
	t.Helper()

	cluster, err := cqlbridge.NewCluster(driver, container.ClusterConfig())
	require.NoError(t, err)

	session := cqlbridge.NewSession(driver)
	cf, err := session.ConnectKeyspace(cluster, container.Keyspace)
	require.NoError(t, err)

	connected, err := cf.Wait()
	require.NoError(t, err)
	require.Same(t, session, connected)

	t.Cleanup(func() {
		_ = session.Free()
	})

	return session
}

// createTable creates a uniquely named table and drops it at cleanup.
func createTable(t *testing.T, session *cqlbridge.Session, schema string) string {
	t.Helper()

	table := fmt.Sprintf("t_%d", time.Now().UnixNano())
	_, err := session.Execute(fmt.Sprintf(schema, table), 0).Wait()
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = session.Execute("DROP TABLE IF EXISTS "+table, 0).Wait()
	})

	return table
}

const eventsTableSchema = `
	CREATE TABLE IF NOT EXISTS %s (
		id INT,
		seq INT,
		payload TEXT,
		PRIMARY KEY (id, seq)
	)
`
