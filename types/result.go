package types

// ColumnInfo holds metadata about a column in query results.
type ColumnInfo struct {
	Keyspace string
	Table    string
	Name     string
	Type     string
}

// ResultSet is one page of rows returned by an execute or batch operation.
//
// It is a copy taken out of the native result before the owning future is
// released, so it stays valid after Wait returns.
type ResultSet struct {
	// Columns describes the result columns in order.
	Columns []ColumnInfo

	// Rows holds each row keyed by column name.
	Rows []map[string]any

	// PagingState resumes iteration at the next page. Empty on the last page.
	PagingState []byte

	// Warnings are server warnings attached to the response.
	Warnings []string
}

// RowCount returns the number of rows in the page.
func (r *ResultSet) RowCount() int {
	if r == nil {
		return 0
	}

	return len(r.Rows)
}

// ColumnCount returns the number of result columns.
func (r *ResultSet) ColumnCount() int {
	if r == nil {
		return 0
	}

	return len(r.Columns)
}

// HasMorePages reports whether the server returned a paging state.
func (r *ResultSet) HasMorePages() bool {
	return r != nil && len(r.PagingState) > 0
}

// First returns the first row, or nil and false for an empty result.
func (r *ResultSet) First() (map[string]any, bool) {
	if r.RowCount() == 0 {
		return nil, false
	}

	return r.Rows[0], true
}

// ColumnMeta describes a column in the schema snapshot.
type ColumnMeta struct {
	Name string
	Type string
	Kind string
}

// TableMeta describes a table in the schema snapshot.
type TableMeta struct {
	Name              string
	PartitionKey      []string
	ClusteringColumns []string
	Columns           map[string]ColumnMeta
}

// KeyspaceMeta describes a keyspace in the schema snapshot.
type KeyspaceMeta struct {
	Name          string
	DurableWrites bool
	StrategyClass string
	Tables        map[string]TableMeta
}

// SchemaMeta is a point-in-time snapshot of the session's schema metadata.
type SchemaMeta struct {
	Keyspaces map[string]KeyspaceMeta
}

// Keyspace looks up a keyspace by name.
func (s *SchemaMeta) Keyspace(name string) (KeyspaceMeta, bool) {
	if s == nil {
		return KeyspaceMeta{}, false
	}
	ks, ok := s.Keyspaces[name]

	return ks, ok
}

// Table looks up a table by keyspace and table name.
func (s *SchemaMeta) Table(keyspace, table string) (TableMeta, bool) {
	ks, ok := s.Keyspace(keyspace)
	if !ok {
		return TableMeta{}, false
	}
	t, ok := ks.Tables[table]

	return t, ok
}

// KeyspaceNames returns the names of all keyspaces in the snapshot.
func (s *SchemaMeta) KeyspaceNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Keyspaces))
	for name := range s.Keyspaces {
		names = append(names, name)
	}

	return names
}
