package cql_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cqlbridge/adapter/cql"
	"github.com/arloliu/cqlbridge/types"
)

func TestBaseResolvedFuture(t *testing.T) {
	b := cql.NewBase()

	rs := &types.ResultSet{Rows: []map[string]any{{"id": 1}}}
	fh := b.Resolved(cql.Outcome{Status: types.StatusOK, Result: rs})

	require.True(t, b.FutureReady(fh))
	b.FutureWait(fh)
	require.Equal(t, types.StatusOK, b.FutureErrorCode(fh))

	got := b.FutureGetResult(fh)
	require.NotNil(t, got)
	require.Equal(t, 1, got.RowCount())
	require.Zero(t, b.FutureGetPrepared(fh))

	b.FutureFree(fh)
	require.Equal(t, int64(1), b.Released(types.ResourceFuture))
	require.Zero(t, b.Live(types.ResourceFuture))
}

func TestBaseGoFuture(t *testing.T) {
	b := cql.NewBase()
	gate := make(chan struct{})

	fh := b.Go(func() cql.Outcome {
		<-gate

		return cql.Failed(types.ServerUnavailable, "not enough replicas")
	})
	require.False(t, b.FutureReady(fh))

	close(gate)
	require.Equal(t, types.ServerUnavailable, b.FutureErrorCode(fh))
	require.Equal(t, "not enough replicas", b.FutureErrorMessage(fh))
	require.True(t, b.FutureReady(fh))
	require.Nil(t, b.FutureGetResult(fh))

	b.FutureFree(fh)
}

func TestBaseDoubleFreeIsCounted(t *testing.T) {
	b := cql.NewBase()

	sh := b.StatementNew("SELECT * FROM t", 0)
	b.StatementFree(sh)
	b.StatementFree(sh)
	b.FutureFree(42)

	require.Equal(t, int64(1), b.Released(types.ResourceStatement))
	require.Equal(t, int64(2), b.InvalidFrees())
}

func TestBasePreparedBind(t *testing.T) {
	b := cql.NewBase()

	fh := b.Resolved(cql.Outcome{Prepared: true, PreparedCQL: "UPDATE t SET v = ? WHERE id = ?"})
	ph := b.FutureGetPrepared(fh)
	require.NotZero(t, ph)
	b.FutureFree(fh)

	require.Equal(t, "UPDATE t SET v = ? WHERE id = ?", b.PreparedQuery(ph))

	sh := b.PreparedBind(ph)
	require.NotZero(t, sh)
	require.Equal(t, types.StatusOK, b.StatementBind(sh, 1, "k"))
	require.Equal(t, types.LibIndexOutOfBounds, b.StatementBind(sh, 2, "k"))

	b.PreparedFree(ph)
	require.Zero(t, b.PreparedBind(ph))

	rec, ok := b.Statement(sh)
	require.True(t, ok)
	require.Equal(t, []int{0}, rec.Unbound())
	b.StatementFree(sh)
}

func TestBaseStatementSetters(t *testing.T) {
	b := cql.NewBase()
	sh := b.StatementNew("SELECT * FROM t", 0)
	defer b.StatementFree(sh)

	require.Equal(t, types.StatusOK, b.StatementSetConsistency(sh, cql.Quorum))
	require.Equal(t, types.StatusOK, b.StatementSetSerialConsistency(sh, cql.LocalSerial))
	require.Equal(t, types.LibBadParams, b.StatementSetSerialConsistency(sh, cql.One))
	require.Equal(t, types.StatusOK, b.StatementSetPageSize(sh, 50))
	require.Equal(t, types.StatusOK, b.StatementSetPagingState(sh, []byte{7}))
	require.Equal(t, types.StatusOK, b.StatementSetTimestamp(sh, 1700000000000000))

	rec, ok := b.Statement(sh)
	require.True(t, ok)
	require.Equal(t, cql.Quorum, *rec.Consistency)
	require.Equal(t, cql.LocalSerial, *rec.SerialConsistency)
	require.Equal(t, 50, rec.PageSize)
	require.Equal(t, []byte{7}, rec.PagingState)
	require.Equal(t, int64(1700000000000000), *rec.Timestamp)

	require.Equal(t, types.LibBadParams, b.StatementSetPageSize(999, 1))
}

func TestBaseBatchCopiesStatements(t *testing.T) {
	b := cql.NewBase()

	bh := b.BatchNew(cql.UnloggedBatch)
	sh := b.StatementNew("INSERT INTO t (id) VALUES (?)", 1)
	require.Equal(t, types.StatusOK, b.StatementBind(sh, 0, 1))
	require.Equal(t, types.StatusOK, b.BatchAddStatement(bh, sh))
	require.Equal(t, types.StatusOK, b.StatementBind(sh, 0, 2))
	require.Equal(t, types.StatusOK, b.BatchAddStatement(bh, sh))
	b.StatementFree(sh)

	require.Equal(t, types.LibBadParams, b.BatchAddStatement(bh, sh))
	require.Equal(t, types.StatusOK, b.BatchSetConsistency(bh, cql.All))
	require.Equal(t, types.StatusOK, b.BatchSetTimestamp(bh, 5))

	rec, ok := b.Batch(bh)
	require.True(t, ok)
	require.Equal(t, cql.UnloggedBatch, rec.Kind)
	require.Len(t, rec.Entries, 2)
	require.Equal(t, 1, rec.Entries[0].Values[0])
	require.Equal(t, 2, rec.Entries[1].Values[0])
	require.Equal(t, cql.All, *rec.Consistency)

	b.BatchFree(bh)
	_, ok = b.Batch(bh)
	require.False(t, ok)
	require.Equal(t, int64(1), b.Released(types.ResourceBatch))
}
