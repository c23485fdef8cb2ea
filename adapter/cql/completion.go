package cql

import (
	"sync"

	"github.com/arloliu/cqlbridge/types"
)

// Outcome is the final state of a native operation.
type Outcome struct {
	Status  types.Status
	Message string

	// Result is set by execute and batch operations.
	Result *types.ResultSet

	// Prepared is set by prepare operations.
	Prepared    bool
	PreparedCQL string
}

// Failed builds an outcome for a failed operation.
func Failed(status types.Status, message string) Outcome {
	return Outcome{Status: status, Message: message}
}

// Completion is the object behind a future handle.
type Completion struct {
	done    chan struct{}
	once    sync.Once
	outcome Outcome
}

// NewCompletion creates a pending completion.
func NewCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Resolve records the outcome and wakes waiters. Only the first call has effect.
func (c *Completion) Resolve(o Outcome) {
	c.once.Do(func() {
		c.outcome = o
		close(c.done)
	})
}

// Wait blocks until the completion is resolved.
func (c *Completion) Wait() Outcome {
	<-c.done

	return c.outcome
}

// Ready reports whether the completion is resolved.
func (c *Completion) Ready() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
