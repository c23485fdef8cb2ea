package integration_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cqlbridge"
	"github.com/arloliu/cqlbridge/adapter/cql"
	cqlv1 "github.com/arloliu/cqlbridge/adapter/cql/v1"
	cqlv2 "github.com/arloliu/cqlbridge/adapter/cql/v2"
	"github.com/arloliu/cqlbridge/native"
	"github.com/arloliu/cqlbridge/types"
)

// releaseCounter is implemented by both gocql drivers.
type releaseCounter interface {
	native.Driver
	InvalidFrees() int64
	Live(kind types.ResourceKind) int
}

func TestEndToEnd(t *testing.T) {
	container := startCassandra(t)

	drivers := map[string]func() releaseCounter{
		"v1": func() releaseCounter { return cqlv1.NewDriver() },
		"v2": func() releaseCounter { return cqlv2.NewDriver() },
	}

	for name, newDriver := range drivers {
		t.Run(name, func(t *testing.T) {
			driver := newDriver()
			session := connect(t, driver, container)
			table := createTable(t, session, eventsTableSchema)

			t.Run("PreparedInsertAndSelect", func(t *testing.T) {
				pf, err := session.Prepare(fmt.Sprintf("INSERT INTO %s (id, seq, payload) VALUES (?, ?, ?)", table))
				require.NoError(t, err)
				prepared, err := pf.Wait()
				require.NoError(t, err)
				defer prepared.Free()

				for seq := range 5 {
					stmt, err := prepared.Bind()
					require.NoError(t, err)
					require.NoError(t, stmt.BindAll(1, seq, fmt.Sprintf("event-%d", seq)))
					_, err = session.ExecuteStatement(stmt).Wait()
					require.NoError(t, err)
					require.NoError(t, stmt.Free())
				}

				rs, err := session.Execute(fmt.Sprintf("SELECT seq, payload FROM %s WHERE id = 1", table), 0).Wait()
				require.NoError(t, err)
				require.Equal(t, 5, rs.RowCount())
				require.Equal(t, 2, rs.ColumnCount())
			})

			t.Run("Paging", func(t *testing.T) {
				stmt, err := session.NewStatement(fmt.Sprintf("SELECT seq FROM %s WHERE id = ?", table), 1)
				require.NoError(t, err)
				defer stmt.Free()
				require.NoError(t, stmt.Bind(0, 1))
				require.NoError(t, stmt.SetPageSize(2))

				first, err := session.ExecuteStatement(stmt).Wait()
				require.NoError(t, err)
				require.Equal(t, 2, first.RowCount())
				require.True(t, first.HasMorePages())

				require.NoError(t, stmt.SetPagingState(first.PagingState))
				second, err := session.ExecuteStatement(stmt).Wait()
				require.NoError(t, err)
				require.Equal(t, 2, second.RowCount())
			})

			t.Run("Batch", func(t *testing.T) {
				batch := session.NewBatch(cql.LoggedBatch)
				for seq := 10; seq < 13; seq++ {
					stmt, err := session.NewStatement(fmt.Sprintf("INSERT INTO %s (id, seq, payload) VALUES (?, ?, ?)", table), 3)
					require.NoError(t, err)
					require.NoError(t, stmt.BindAll(2, seq, "batched"))
					require.NoError(t, batch.Add(stmt))
					require.NoError(t, stmt.Free())
				}
				require.NoError(t, batch.SetConsistency(cqlbridge.One))

				_, err := session.ExecuteBatch(batch).Wait()
				require.NoError(t, err)

				rs, err := session.Execute(fmt.Sprintf("SELECT * FROM %s WHERE id = 2", table), 0).Wait()
				require.NoError(t, err)
				require.Equal(t, 3, rs.RowCount())
			})

			t.Run("ServerErrorKeepsCode", func(t *testing.T) {
				_, err := session.Execute("SELECT * FROM no_such_table_anywhere", 0).Wait()
				require.Error(t, err)

				status, ok := cqlbridge.StatusOf(err)
				require.True(t, ok)
				require.Equal(t, types.SourceServer, status.Source())
			})

			t.Run("PrepareRejectionSurfacesOnExecute", func(t *testing.T) {
				// gocql prepares lazily, so the server sees the statement on first execute
				pf, err := session.Prepare("SELECT * FROM no_such_table_anywhere WHERE id = ?")
				require.NoError(t, err)
				prepared, err := pf.Wait()
				require.NoError(t, err)
				defer prepared.Free()

				stmt, err := prepared.Bind()
				require.NoError(t, err)
				defer stmt.Free()
				require.NoError(t, stmt.Bind(0, 1))

				_, err = session.ExecuteStatement(stmt).Wait()
				status, ok := cqlbridge.StatusOf(err)
				require.True(t, ok, "expected a native status, got %v", err)
				require.Equal(t, types.SourceServer, status.Source())
			})

			t.Run("Schema", func(t *testing.T) {
				schema := session.Schema()
				meta, ok := schema.Table(container.Keyspace, table)
				require.True(t, ok)
				require.Equal(t, []string{"id"}, meta.PartitionKey)
				require.Equal(t, []string{"seq"}, meta.ClusteringColumns)
			})

			t.Run("CloseAndFree", func(t *testing.T) {
				other := connect(t, driver, container)
				_, err := other.Close().Wait()
				require.NoError(t, err)
				require.NoError(t, other.Free())
				require.ErrorIs(t, other.Free(), cqlbridge.ErrResourceReleased)
			})

			require.Zero(t, driver.InvalidFrees())
			require.Zero(t, driver.Live(types.ResourceFuture))
		})
	}
}
