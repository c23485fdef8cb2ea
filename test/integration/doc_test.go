// Package integration_test provides end-to-end integration tests for cqlbridge.
//
// These tests drive the wrapper through the gocql-backed native drivers
// against a real Cassandra node.
//
// # Running Integration Tests
//
// Integration tests are skipped by default when using -short flag:
//
//	go test -short ./...           # Skips integration tests
//	go test ./test/integration/... # Runs integration tests
//
// They require Docker and use testcontainers to start a Cassandra node.
// Set SKIP_INTEGRATION_TESTS=1 to skip them without -short.
package integration_test
