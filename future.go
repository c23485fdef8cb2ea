package cqlbridge

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/arloliu/cqlbridge/native"
	"github.com/arloliu/cqlbridge/types"
)

// Void is the payload of futures that yield nothing on success.
type Void struct{}

// Future owns one outstanding native asynchronous operation.
//
// A future is resolved exactly once, by Wait or Discard. Its native handle
// is released on every exit path of that call, including failures. Any
// later call returns ErrFutureConsumed without touching the native driver.
//
// The wrapper adds no timeout and no cancellation: Wait blocks for as long
// as the native driver takes. Configure request timeouts on the cluster.
type Future[T any] struct {
	driver   native.Driver
	handle   native.FutureHandle
	op       types.Operation
	config   *Config
	log      types.Logger
	extract  func(native.FutureHandle) (T, error)
	err      error
	consumed atomic.Bool
}

// Future specializations returned by Session.
type (
	// PreparedFuture yields a prepared statement.
	PreparedFuture = Future[*Prepared]

	// ResultFuture yields one page of results.
	ResultFuture = Future[*Result]

	// CloseFuture yields nothing; it reports whether shutdown succeeded.
	CloseFuture = Future[Void]
)

// newFuture wraps a native future handle issued through s.
func newFuture[T any](s *Session, handle native.FutureHandle, op types.Operation,
	extract func(native.FutureHandle) (T, error),
) *Future[T] {
	s.config.Metrics.IncSubmitted(op)

	return &Future[T]{
		driver:  s.driver,
		handle:  handle,
		op:      op,
		config:  s.config,
		log:     s.log,
		extract: extract,
	}
}

// failedFuture returns a future that resolves to err without a native handle.
func failedFuture[T any](s *Session, op types.Operation, err error) *Future[T] {
	return &Future[T]{
		driver: s.driver,
		op:     op,
		config: s.config,
		log:    s.log,
		err:    err,
	}
}

// Wait blocks until the operation completes and returns its payload.
//
// The native handle is released before Wait returns, whatever the outcome.
// Wait consumes the future; calling it again returns ErrFutureConsumed.
//
// Returns:
//   - T: The success payload, or the zero value on failure
//   - error: *types.StatusError for native failures, a wrapper sentinel for
//     local failures, or nil
func (f *Future[T]) Wait() (T, error) {
	var zero T
	if !f.consumed.CompareAndSwap(false, true) {
		return zero, types.ErrFutureConsumed
	}

	if f.handle == 0 {
		f.config.Metrics.IncRejected(f.op)
		f.log.Debug("operation rejected before submission",
			"operation", string(f.op),
			"error", f.err,
		)

		return zero, f.err
	}
	defer f.release()

	start := time.Now()
	f.driver.FutureWait(f.handle)
	code := f.driver.FutureErrorCode(f.handle)
	f.config.Metrics.ObserveWaitDuration(f.op, time.Since(start).Seconds())

	if code != types.StatusOK {
		f.config.Metrics.IncFailed(f.op)
		err := types.ErrorFromStatus(code, f.driver.FutureErrorMessage(f.handle))
		f.log.Debug("operation failed",
			"operation", string(f.op),
			"status", code.String(),
		)

		return zero, err
	}

	if f.extract == nil {
		f.config.Metrics.IncCompleted(f.op)

		return zero, nil
	}

	v, err := f.extract(f.handle)
	if err != nil {
		f.config.Metrics.IncFailed(f.op)

		return zero, err
	}
	f.config.Metrics.IncCompleted(f.op)

	return v, nil
}

// Ready reports whether Wait would return without blocking.
//
// It returns false once the future has been consumed.
func (f *Future[T]) Ready() bool {
	if f.consumed.Load() {
		return false
	}
	if f.handle == 0 {
		return true
	}

	return f.driver.FutureReady(f.handle)
}

// Discard releases the future without waiting for it.
//
// The operation keeps running inside the native driver; its outcome is lost.
//
// Returns:
//   - error: ErrFutureConsumed if the future was already resolved
func (f *Future[T]) Discard() error {
	return f.discard(false)
}

// discard consumes the future without reading its outcome. When settle is
// set it first blocks until the native operation has finished.
func (f *Future[T]) discard(settle bool) error {
	if !f.consumed.CompareAndSwap(false, true) {
		return types.ErrFutureConsumed
	}
	if f.handle == 0 {
		f.config.Metrics.IncRejected(f.op)

		return nil
	}
	if settle {
		f.driver.FutureWait(f.handle)
	}
	f.config.Metrics.IncDiscarded(f.op)
	f.release()

	return nil
}

// Operation returns the operation this future tracks.
func (f *Future[T]) Operation() types.Operation {
	return f.op
}

func (f *Future[T]) release() {
	f.driver.FutureFree(f.handle)
	f.config.Metrics.IncReleased(types.ResourceFuture)
}

// ConnectFuture is the future returned by Session.Connect.
//
// It holds the session that issued the connect, so the caller cannot use a
// half-connected session, and hands it back when resolved: on success the
// session is connected, on failure it is returned alongside the error and
// its native resource is left intact for the caller to retry or free.
type ConnectFuture struct {
	future  *Future[Void]
	session *Session
	cluster *Cluster
	owns    bool
}

// Wait blocks until the connect completes and returns the session.
//
// The returned session is the same *Session that issued the connect, on
// both success and failure. A second call returns (nil, ErrFutureConsumed).
//
// Returns:
//   - *Session: The originating session
//   - error: The translated native error, or nil if connected
func (c *ConnectFuture) Wait() (*Session, error) {
	_, err := c.future.Wait()
	if errors.Is(err, types.ErrFutureConsumed) {
		return nil, err
	}
	c.restore()

	if c.owns {
		s := c.session
		if err != nil {
			s.log.Warn("connect failed", "error", err)
		} else {
			s.log.Info("session connected")
		}
	}

	return c.session, err
}

// Ready reports whether Wait would return without blocking.
func (c *ConnectFuture) Ready() bool {
	return c.future.Ready()
}

// Discard drops the outcome of the connect and returns the session.
//
// Unlike Future.Discard it blocks until the native connect has finished:
// the session stays owned by the future until then, so it can never be
// freed under a running connect. Whether the session ended up connected is
// not reported.
//
// Returns:
//   - *Session: The originating session
//   - error: ErrFutureConsumed if the future was already resolved
func (c *ConnectFuture) Discard() (*Session, error) {
	if err := c.future.discard(true); err != nil {
		return nil, err
	}
	c.restore()

	return c.session, nil
}

// restore releases the consumed cluster and returns session ownership to the caller.
func (c *ConnectFuture) restore() {
	if c.cluster != nil {
		c.cluster.releaseConsumed()
	}
	if c.owns {
		c.session.state.Store(sessionOpen)
	}
}
