// Package v1 provides a native driver for cqlbridge backed by gocql v1.x.
//
// The driver turns gocql's blocking API into the handle-and-future surface
// that cqlbridge wraps: every session, statement, batch and future is an
// opaque handle, and each blocking gocql call runs on its own goroutine and
// resolves a future.
//
// # Installation
//
// Import this package along with gocql v1.x:
//
//	import (
//	    "github.com/gocql/gocql"
//	    "github.com/arloliu/cqlbridge/adapter/cql/v1"
//	)
//
// # Usage
//
//	driver := v1.NewDriver()
//
//	cluster, err := cqlbridge.NewCluster(driver, cqlbridge.ClusterConfig{
//	    ContactPoints: []string{"127.0.0.1"},
//	    Consistency:   cqlbridge.Quorum,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session := cqlbridge.NewSession(driver)
//	defer session.Free()
//
//	if _, err := session.Connect(cluster).Wait(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Semantics
//
//   - Prepare resolves without a round trip; gocql prepares lazily on first
//     execution, so a rejected statement fails when executed
//   - Parameters that were never bound are sent as gocql.UnsetValue
//   - A statement with a page size returns exactly one page; resume with
//     the result's paging state
//
// # Type Conversions
//
// The package provides helper functions for converting between cqlbridge and gocql types:
//
//   - [ToGocqlConsistency]: Converts cqlbridge Consistency to gocql.Consistency
//   - [FromGocqlConsistency]: Converts gocql.Consistency to cqlbridge Consistency
//   - [ToGocqlBatchType]: Converts cqlbridge BatchType to gocql.BatchType
//   - [FromGocqlBatchType]: Converts gocql.BatchType to cqlbridge BatchType
//   - [ToGocqlSerialConsistency]: Converts cqlbridge Consistency to gocql.SerialConsistency
//   - [FromGocqlSerialConsistency]: Converts gocql.SerialConsistency to cqlbridge Consistency
//   - [UnwrapSession]: Returns the gocql.Session behind a session handle
//
// # Thread Safety
//
// Driver is safe for concurrent use, matching gocql's thread safety guarantees.
package v1
