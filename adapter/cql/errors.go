package cql

import (
	"context"
	"errors"
	"net"

	"github.com/arloliu/cqlbridge/types"
)

// requestError matches the server error frames of both gocql drivers.
type requestError interface {
	Code() int
	Message() string
}

// StatusFromError maps a driver error onto the native status space.
//
// Server errors keep their CQL protocol code. Errors listed in known map to
// the given status. Timeouts map to LIB_REQUEST_TIMED_OUT. Anything else
// maps to fallback, which callers choose per operation.
//
// Parameters:
//   - err: The driver error, may be nil
//   - fallback: Status for unrecognized errors
//   - known: Driver sentinel errors and their statuses
//
// Returns:
//   - types.Status: The native status (StatusOK for a nil error)
//   - string: The error message
func StatusFromError(err error, fallback types.Status, known map[error]types.Status) (types.Status, string) {
	if err == nil {
		return types.StatusOK, ""
	}

	var reqErr requestError
	if errors.As(err, &reqErr) {
		return types.MakeStatus(types.SourceServer, uint32(reqErr.Code())), reqErr.Message()
	}

	for sentinel, status := range known {
		if errors.Is(err, sentinel) {
			return status, err.Error()
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return types.LibRequestTimedOut, err.Error()
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return types.LibRequestTimedOut, err.Error()
	}

	return fallback, err.Error()
}
