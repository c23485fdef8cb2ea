// Package cqlbridge provides owning Go handles over a native Cassandra driver.
//
// The native driver speaks in raw handles: sessions, futures, statements,
// prepared statements, batches and cluster configurations, each of which must
// be freed exactly once. cqlbridge wraps every handle in a Go value that owns
// it, so a resource is released on every path and can never be used after it
// was freed.
//
// # Key Features
//
//   - Owning handles: Free is idempotent and every wrapper releases its native resource
//   - One-shot futures: Wait blocks, translates the status, and frees the future
//   - Move-on-connect: Connect hands the session to a ConnectFuture and gives it back on success and failure
//   - Status translation: native status codes become *StatusError values that keep the code
//   - Encoding checks: text with NUL bytes or invalid UTF-8 is rejected before it reaches the driver
//
// # Basic Usage
//
//	driver := v1.NewDriver()
//
//	cfg := cqlbridge.DefaultClusterConfig()
//	cfg.ContactPoints = []string{"127.0.0.1"}
//	cluster, err := cqlbridge.NewCluster(driver, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session := cqlbridge.NewSession(driver)
//	session, err = session.Connect(cluster).Wait()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Free()
//
//	result, err := session.Execute("SELECT release_version FROM system.local", 0).Wait()
//
// # Futures
//
// Every asynchronous operation returns a future. Wait may be called once: it
// blocks until the native future resolves, frees it, and returns the value or
// the translated error. A second Wait returns ErrFutureConsumed. Futures that
// are never waited on should be released with Discard.
//
// ConnectFuture is different: the session it was created from is unusable
// until the future resolves, and Wait returns the same *Session whether the
// connect succeeded or not:
//
//	future := session.Connect(cluster)
//	session, err := future.Wait()
//	if err != nil {
//	    // session is still valid and may be connected again
//	}
//
// # Error Handling
//
// Native failures are returned as *StatusError. Use StatusOf or errors.As to
// recover the native code:
//
//	_, err := session.Execute("SELEC 1", 0).Wait()
//	if status, ok := cqlbridge.StatusOf(err); ok && status == types.ServerSyntaxError {
//	    // rejected by the server
//	}
//
// Compare against a specific code with errors.Is:
//
//	if errors.Is(err, &cqlbridge.StatusError{Code: types.ServerWriteTimeout}) {
//	    // retry
//	}
//
// # Sentinel Errors
//
//   - ErrFutureConsumed: Wait or Discard called on a future that already resolved
//   - ErrResourceReleased: Operation on a handle that was already freed
//   - ErrSessionMoved: Operation on a session owned by a pending connect
//   - ErrInvalidEncoding: Text that cannot be passed to the native driver
//   - ErrNilDriver: A nil native driver was provided
//   - ErrInvalidConfig: A cluster configuration failed validation
//
// # Drivers
//
// The native boundary is the native.Driver interface. adapter/cql/v1 and
// adapter/cql/v2 implement it on top of gocql and the Apache Cassandra gocql
// driver; test/testutil provides an in-memory driver for unit tests.
package cqlbridge
