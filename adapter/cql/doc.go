// Package cql provides the driver-independent runtime shared by the
// gocql-backed native drivers.
//
// A native.Driver is a C-style surface: opaque handles, status codes and
// futures that are waited on and freed. The gocql drivers are Go libraries
// with blocking calls and error values. This package bridges the two:
//
//   - Base: handle tables for statements, prepared statements, batches and
//     futures, plus every native.Driver method that does not need a live
//     cluster connection
//   - Completion: the object behind a future handle, resolved exactly once
//     by a goroutine running the blocking driver call
//   - StatementRecord, BatchRecord: request state copied at submission
//   - StatusFromError: maps driver errors onto the native status space
//
// # Adapters
//
// Driver-specific adapters embed Base and add the session and cluster
// entry points:
//
//   - [github.com/arloliu/cqlbridge/adapter/cql/v1]: gocql v1.x
//   - [github.com/arloliu/cqlbridge/adapter/cql/v2]: apache/cassandra-gocql-driver v2.x
//
// # Usage
//
//	driver := v1.NewDriver()
//	session := cqlbridge.NewSession(driver)
//	defer session.Free()
package cql
