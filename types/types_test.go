package types

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrFutureConsumed", ErrFutureConsumed, "future already consumed"},
		{"ErrResourceReleased", ErrResourceReleased, "already released"},
		{"ErrSessionMoved", ErrSessionMoved, "pending connect"},
		{"ErrInvalidEncoding", ErrInvalidEncoding, "cannot be encoded"},
		{"ErrNilDriver", ErrNilDriver, "driver cannot be nil"},
		{"ErrInvalidConfig", ErrInvalidConfig, "invalid cluster configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.err.Error(), tt.msg)
		})
	}
}

func TestEncodingError(t *testing.T) {
	err := fmt.Errorf("prepare: %w", &EncodingError{Field: "query", Offset: 4, Reason: "embedded NUL"})

	assert.Contains(t, err.Error(), "cannot encode query: embedded NUL at byte 4")
	assert.True(t, errors.Is(err, ErrInvalidEncoding))
	assert.False(t, errors.Is(err, ErrInvalidConfig))
}

func TestConsistencyConstants(t *testing.T) {
	assert.Equal(t, Consistency(0x01), One)
	assert.Equal(t, Consistency(0x04), Quorum)
	assert.Equal(t, Consistency(0x06), LocalQuorum)
	assert.Equal(t, Consistency(0x0A), LocalOne)
}

func TestConsistencyText(t *testing.T) {
	for c, name := range consistencyNames {
		assert.Equal(t, name, c.String())

		parsed, err := ParseConsistency(name)
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	parsed, err := ParseConsistency(" local_quorum ")
	require.NoError(t, err)
	assert.Equal(t, LocalQuorum, parsed)

	_, err = ParseConsistency("MOST")
	require.Error(t, err)
	assert.Equal(t, "CONSISTENCY(0x42)", Consistency(0x42).String())

	var c Consistency
	require.NoError(t, c.UnmarshalText([]byte("EACH_QUORUM")))
	assert.Equal(t, EachQuorum, c)
	text, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "EACH_QUORUM", string(text))
}

func TestBatchTypeConstants(t *testing.T) {
	assert.Equal(t, BatchType(0), LoggedBatch)
	assert.Equal(t, BatchType(1), UnloggedBatch)
	assert.Equal(t, BatchType(2), CounterBatch)

	assert.True(t, CounterBatch.Valid())
	assert.False(t, BatchType(3).Valid())
	assert.Equal(t, "UNLOGGED", UnloggedBatch.String())
	assert.Equal(t, "BATCH(7)", BatchType(7).String())
}

func TestEnumerations(t *testing.T) {
	assert.Len(t, Operations(), 5)
	assert.Len(t, ResourceKinds(), 6)
}

func TestClusterConfigDefaults(t *testing.T) {
	cfg := DefaultClusterConfig()
	assert.Equal(t, 9042, cfg.Port)
	assert.Equal(t, LocalOne, cfg.Consistency)
	assert.Equal(t, 12*time.Second, cfg.RequestTimeout)

	// defaults alone are not enough: a contact point is required
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.ContactPoints = []string{"127.0.0.1"}
	require.NoError(t, cfg.Validate())
}

func TestClusterConfigNegativeTimeout(t *testing.T) {
	cfg := DefaultClusterConfig()
	cfg.ContactPoints = []string{"127.0.0.1"}
	cfg.ConnectTimeout = -1

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "timeouts cannot be negative")
}

func TestResultSet(t *testing.T) {
	var nilSet *ResultSet
	assert.Zero(t, nilSet.RowCount())
	assert.Zero(t, nilSet.ColumnCount())
	assert.False(t, nilSet.HasMorePages())
	_, ok := nilSet.First()
	assert.False(t, ok)

	rs := &ResultSet{
		Columns:     []ColumnInfo{{Name: "id"}, {Name: "name"}},
		Rows:        []map[string]any{{"id": 1, "name": "a"}},
		PagingState: []byte{1},
	}
	assert.Equal(t, 1, rs.RowCount())
	assert.Equal(t, 2, rs.ColumnCount())
	assert.True(t, rs.HasMorePages())

	row, ok := rs.First()
	require.True(t, ok)
	assert.Equal(t, "a", row["name"])
}

func TestSchemaMeta(t *testing.T) {
	schema := &SchemaMeta{Keyspaces: map[string]KeyspaceMeta{
		"b": {Name: "b"},
		"a": {Name: "a", Tables: map[string]TableMeta{"t": {Name: "t"}}},
	}}

	assert.ElementsMatch(t, []string{"a", "b"}, schema.KeyspaceNames())

	_, ok := schema.Keyspace("c")
	assert.False(t, ok)

	table, ok := schema.Table("a", "t")
	require.True(t, ok)
	assert.Equal(t, "t", table.Name)

	_, ok = schema.Table("b", "t")
	assert.False(t, ok)
}
