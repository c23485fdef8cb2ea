// Package testutil provides test utilities and a mock native driver for
// cqlbridge testing.
//
// # Mock Implementations
//
//   - [MockDriver]: In-memory native.Driver with real handle tables and
//     configurable outcomes
//   - [TestMetricsCollector]: Records every metrics call
//   - [RecordingLogger]: Records every log message
//
// # Usage
//
//	driver := testutil.NewMockDriver()
//	driver.ExecuteStatus = types.ServerUnavailable
//
//	session := cqlbridge.NewSession(driver)
//	defer session.Free()
//
//	// ... exercise the session ...
//
//	require.Zero(t, driver.InvalidFrees())
//
// # Integration Test Helpers
//
//   - [StartCassandra]: Starts a Cassandra test container (requires Docker)
package testutil
