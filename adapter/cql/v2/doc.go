// Package v2 provides a native driver for cqlbridge backed by the Apache
// gocql driver v2 (github.com/apache/cassandra-gocql-driver).
//
// It exposes the same handle-and-future surface as the v1 driver, so
// switching between the two is a one-line change.
//
// # Installation
//
// Import this package along with the Apache gocql driver:
//
//	import (
//	    gocql "github.com/apache/cassandra-gocql-driver/v2"
//	    v2 "github.com/arloliu/cqlbridge/adapter/cql/v2"
//	)
//
// # Usage
//
//	driver := v2.NewDriver()
//	session := cqlbridge.NewSession(driver)
//	defer session.Free()
//
// # Type Conversions
//
//   - [ToGocqlConsistency]: Converts cqlbridge Consistency to gocql.Consistency
//   - [FromGocqlConsistency]: Converts gocql.Consistency to cqlbridge Consistency
//   - [ToGocqlBatchType]: Converts cqlbridge BatchType to gocql.BatchType
//   - [FromGocqlBatchType]: Converts gocql.BatchType to cqlbridge BatchType
//   - [ToGocqlSerialConsistency]: Converts cqlbridge Consistency to gocql serial consistency
//   - [UnwrapSession]: Returns the gocql.Session behind a session handle
//
// # Differences from v1
//
// The Apache driver represents serial consistency as gocql.Consistency and
// builds batches fluently from the session. Prepare, paging and unset
// parameter handling behave as in the v1 driver.
//
// # Thread Safety
//
// Driver is safe for concurrent use, matching gocql's thread safety guarantees.
package v2
