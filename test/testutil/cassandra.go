package testutil

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/cassandra"

	v1 "github.com/arloliu/cqlbridge/adapter/cql/v1"
	"github.com/arloliu/cqlbridge/native"
	"github.com/arloliu/cqlbridge/types"
)

// CassandraContainer wraps a Cassandra test container.
type CassandraContainer struct {
	Container *cassandra.CassandraContainer
	Host      string
	Port      int
	Keyspace  string
}

// ClusterConfig returns cqlbridge connection parameters for the container.
func (c *CassandraContainer) ClusterConfig() types.ClusterConfig {
	cfg := types.DefaultClusterConfig()
	cfg.ContactPoints = []string{c.Host}
	cfg.Port = c.Port
	cfg.Consistency = types.One
	cfg.ConnectTimeout = 60 * time.Second
	cfg.RequestTimeout = 60 * time.Second

	return cfg
}

// CassandraOptions configures the Cassandra container.
type CassandraOptions struct {
	// Image is the Cassandra image to use. Defaults to "cassandra:4.1".
	Image string
	// Keyspace is the keyspace to create. Defaults to "cqlbridge_test".
	Keyspace string
}

// DefaultCassandraOptions returns default options for Cassandra container.
func DefaultCassandraOptions() CassandraOptions {
	return CassandraOptions{
		Image:    "cassandra:4.1",
		Keyspace: "cqlbridge_test",
	}
}

// StartCassandra starts a Cassandra container for testing.
//
// The container is automatically terminated when the test completes.
//
// Parameters:
//   - ctx: Context for container operations
//   - t: Testing context for cleanup registration
//   - opts: Optional configuration (nil uses defaults)
//
// Returns:
//   - *CassandraContainer: Container with connection details; the keyspace exists
//   - error: Error if container fails to start
func StartCassandra(ctx context.Context, t *testing.T, opts *CassandraOptions) (*CassandraContainer, error) {
	t.Helper()

	if opts == nil {
		defaultOpts := DefaultCassandraOptions()
		opts = &defaultOpts
	}

	// Start Cassandra container
	container, err := cassandra.Run(ctx, opts.Image,
		testcontainers.WithEnv(map[string]string{
			"HEAP_NEWSIZE":     "128M",
			"MAX_HEAP_SIZE":    "512M",
			"CASSANDRA_SNITCH": "SimpleSnitch",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start Cassandra container: %w", err)
	}

	// Register cleanup
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate Cassandra container: %v", err)
		}
	})

	// Get connection host
	endpoint, err := container.ConnectionHost(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get connection host: %w", err)
	}
	host, portText, err := net.SplitHostPort(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection host %q: %w", endpoint, err)
	}
	port, err := strconv.Atoi(portText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse port %q: %w", portText, err)
	}

	c := &CassandraContainer{
		Container: container,
		Host:      host,
		Port:      port,
		Keyspace:  opts.Keyspace,
	}

	// The node accepts TCP before CQL is ready, so probe until a connect succeeds.
	driver := v1.NewDriver()
	var lastErr error
	for i := 0; i < 10; i++ {
		if lastErr = c.bootstrap(driver); lastErr == nil {
			break
		}
		t.Logf("waiting for Cassandra to be ready (attempt %d/10): %v", i+1, lastErr)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("cassandra not ready: %w", ctx.Err())
		case <-time.After(3 * time.Second):
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("failed to bootstrap after retries: %w", lastErr)
	}

	return c, nil
}

// bootstrap connects through the native driver and creates the test keyspace.
func (c *CassandraContainer) bootstrap(driver native.Driver) error {
	cluster, status := driver.ClusterNew(c.ClusterConfig())
	if !status.OK() {
		return types.ErrorFromStatus(status, "cluster rejected")
	}

	session := driver.SessionNew()
	defer driver.SessionFree(session)

	connected := awaitFuture(driver, driver.SessionConnect(session, cluster))
	driver.ClusterFree(cluster)
	if connected != nil {
		return fmt.Errorf("connect: %w", connected)
	}

	query := fmt.Sprintf(`
		CREATE KEYSPACE IF NOT EXISTS %s
		WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 1}
	`, c.Keyspace)

	stmt := driver.StatementNew(query, 0)
	defer driver.StatementFree(stmt)
	if err := awaitFuture(driver, driver.SessionExecute(session, stmt)); err != nil {
		return fmt.Errorf("failed to create keyspace: %w", err)
	}

	return awaitFuture(driver, driver.SessionClose(session))
}

// awaitFuture waits on f, frees it, and returns its translated status.
func awaitFuture(driver native.Driver, f native.FutureHandle) error {
	defer driver.FutureFree(f)
	driver.FutureWait(f)

	return types.ErrorFromStatus(driver.FutureErrorCode(f), driver.FutureErrorMessage(f))
}
