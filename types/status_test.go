package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLayout(t *testing.T) {
	assert.Equal(t, Status(0x0100000A), LibNoHostsAvailable)
	assert.Equal(t, Status(0x02002200), ServerInvalidQuery)
	assert.Equal(t, MakeStatus(SourceServer, 0x1000), ServerUnavailable)

	assert.Equal(t, SourceServer, ServerSyntaxError.Source())
	assert.Equal(t, uint32(0x2000), ServerSyntaxError.Code())
	assert.Equal(t, SourceLib, LibBadParams.Source())
	assert.True(t, StatusOK.OK())
	assert.False(t, LibBadParams.OK())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "LIB_NO_HOSTS_AVAILABLE", LibNoHostsAvailable.String())
	assert.Equal(t, "SERVER_UNPREPARED", ServerUnprepared.String())
	assert.Equal(t, "server(0x9999)", MakeStatus(SourceServer, 0x9999).String())
	assert.Equal(t, "source(9)", StatusSource(9).String())
}

func TestStatusNamesAreUnique(t *testing.T) {
	seen := make(map[string]Status, len(statusNames))
	for status, name := range statusNames {
		if prev, ok := seen[name]; ok {
			t.Fatalf("%s used by %#x and %#x", name, uint32(prev), uint32(status))
		}
		seen[name] = status
	}
}

func TestErrorFromStatus(t *testing.T) {
	require.NoError(t, ErrorFromStatus(StatusOK, "ignored"))

	err := ErrorFromStatus(ServerWriteTimeout, "Operation timed out - received only 1 responses.")
	require.Error(t, err)
	assert.Equal(t, "cqlbridge: SERVER_WRITE_TIMEOUT: Operation timed out - received only 1 responses.", err.Error())
	assert.Equal(t, "cqlbridge: LIB_BAD_PARAMS", ErrorFromStatus(LibBadParams, "").Error())

	wrapped := fmt.Errorf("execute: %w", err)
	assert.True(t, errors.Is(wrapped, &StatusError{Code: ServerWriteTimeout}))
	assert.False(t, errors.Is(wrapped, &StatusError{Code: ServerReadTimeout}))
}

func TestStatusOf(t *testing.T) {
	status, ok := StatusOf(nil)
	assert.True(t, ok)
	assert.Equal(t, StatusOK, status)

	status, ok = StatusOf(fmt.Errorf("wrap: %w", ErrorFromStatus(ServerOverloaded, "")))
	assert.True(t, ok)
	assert.Equal(t, ServerOverloaded, status)

	_, ok = StatusOf(ErrFutureConsumed)
	assert.False(t, ok)
}
