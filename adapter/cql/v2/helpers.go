package v2

import (
	"fmt"

	gocql "github.com/apache/cassandra-gocql-driver/v2"

	"github.com/arloliu/cqlbridge/adapter/cql"
	"github.com/arloliu/cqlbridge/native"
	"github.com/arloliu/cqlbridge/types"
)

// ToGocqlConsistency converts a cqlbridge Consistency to gocql.Consistency.
//
// This is useful when you need to interact with the underlying gocql driver
// directly while using cqlbridge consistency constants.
//
// Parameters:
//   - c: cqlbridge consistency level
//
// Returns:
//   - gocql.Consistency: The equivalent gocql consistency level
func ToGocqlConsistency(c cql.Consistency) gocql.Consistency {
	return gocql.Consistency(c)
}

// FromGocqlConsistency converts a gocql.Consistency to cqlbridge Consistency.
//
// This is useful when you need to read consistency levels from gocql
// and use them with cqlbridge APIs.
//
// Parameters:
//   - c: gocql consistency level
//
// Returns:
//   - cql.Consistency: The equivalent cqlbridge consistency level
func FromGocqlConsistency(c gocql.Consistency) cql.Consistency {
	return cql.Consistency(c)
}

// ToGocqlBatchType converts a cqlbridge BatchType to gocql.BatchType.
//
// This is useful when you need to interact with the underlying gocql driver
// directly while using cqlbridge batch type constants.
//
// Parameters:
//   - bt: cqlbridge batch type
//
// Returns:
//   - gocql.BatchType: The equivalent gocql batch type
func ToGocqlBatchType(bt cql.BatchType) gocql.BatchType {
	return gocql.BatchType(bt)
}

// FromGocqlBatchType converts a gocql.BatchType to cqlbridge BatchType.
//
// This is useful when you need to read batch types from gocql
// and use them with cqlbridge APIs.
//
// Parameters:
//   - bt: gocql batch type
//
// Returns:
//   - cql.BatchType: The equivalent cqlbridge batch type
func FromGocqlBatchType(bt gocql.BatchType) cql.BatchType {
	return cql.BatchType(bt)
}

// ToGocqlSerialConsistency converts a cqlbridge Consistency to gocql.Consistency.
//
// In gocql v2, serial consistency is represented as gocql.Consistency,
// not a separate type like in v1.
//
// This is useful for CAS (lightweight transaction) operations that require
// serial consistency levels.
//
// Parameters:
//   - c: cqlbridge consistency level (should be Serial or LocalSerial)
//
// Returns:
//   - gocql.Consistency: The equivalent gocql consistency level
func ToGocqlSerialConsistency(c cql.Consistency) gocql.Consistency {
	return gocql.Consistency(c)
}

// FromGocqlSerialConsistency converts a gocql.Consistency (used for serial) to cqlbridge Consistency.
//
// Parameters:
//   - c: gocql consistency level used for serial consistency
//
// Returns:
//   - cql.Consistency: The equivalent cqlbridge consistency level
func FromGocqlSerialConsistency(c gocql.Consistency) cql.Consistency {
	return cql.Consistency(c)
}

// UnwrapSession returns the gocql.Session behind a connected session handle.
//
// This is useful for operations the native surface does not expose. The
// gocql session stays owned by the driver; do not close it.
//
// Parameters:
//   - d: The driver that issued the handle
//   - s: A session handle
//
// Returns:
//   - *gocql.Session: The underlying gocql session, or nil if not connected
func UnwrapSession(d *Driver, s native.SessionHandle) *gocql.Session {
	rec, ok := d.sessions.Get(uint64(s))
	if !ok {
		return nil
	}

	return rec.current()
}

// NewClusterConfig builds a gocql cluster configuration.
//
// Parameters:
//   - cfg: cqlbridge connection parameters
//   - keyspace: Keyspace to use, or empty for none
//
// Returns:
//   - *gocql.ClusterConfig: A new gocql configuration
func NewClusterConfig(cfg types.ClusterConfig, keyspace string) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(cfg.ContactPoints...)
	cluster.Keyspace = keyspace
	cluster.Consistency = ToGocqlConsistency(cfg.Consistency)
	if cfg.Port > 0 {
		cluster.Port = cfg.Port
	}
	if cfg.ProtocolVersion > 0 {
		cluster.ProtoVersion = cfg.ProtocolVersion
	}
	if cfg.ConnectTimeout > 0 {
		cluster.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.RequestTimeout > 0 {
		cluster.Timeout = cfg.RequestTimeout
	}
	if cfg.NumConnsPerHost > 0 {
		cluster.NumConns = cfg.NumConnsPerHost
	}
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}
	if cfg.LocalDC != "" {
		cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(
			gocql.DCAwareRoundRobinPolicy(cfg.LocalDC),
		)
	}

	return cluster
}

// FromColumnInfo converts result column metadata.
func FromColumnInfo(cols []gocql.ColumnInfo) []types.ColumnInfo {
	if len(cols) == 0 {
		return nil
	}

	out := make([]types.ColumnInfo, len(cols))
	for i, col := range cols {
		out[i] = types.ColumnInfo{
			Keyspace: col.Keyspace,
			Table:    col.Table,
			Name:     col.Name,
			Type:     fmt.Sprint(col.TypeInfo),
		}
	}

	return out
}

// FromKeyspaceMetadata converts gocql keyspace metadata into a snapshot.
func FromKeyspaceMetadata(km *gocql.KeyspaceMetadata) types.KeyspaceMeta {
	meta := types.KeyspaceMeta{
		Name:          km.Name,
		DurableWrites: km.DurableWrites,
		StrategyClass: km.StrategyClass,
		Tables:        make(map[string]types.TableMeta, len(km.Tables)),
	}

	for name, tm := range km.Tables {
		table := types.TableMeta{
			Name:              tm.Name,
			PartitionKey:      columnNames(tm.PartitionKey),
			ClusteringColumns: columnNames(tm.ClusteringColumns),
			Columns:           make(map[string]types.ColumnMeta, len(tm.Columns)),
		}
		for colName, cm := range tm.Columns {
			table.Columns[colName] = types.ColumnMeta{
				Name: cm.Name,
				Type: fmt.Sprint(cm.Type),
				Kind: fmt.Sprint(cm.Kind),
			}
		}
		meta.Tables[name] = table
	}

	return meta
}

func columnNames(cols []*gocql.ColumnMetadata) []string {
	names := make([]string, 0, len(cols))
	for _, col := range cols {
		names = append(names, col.Name)
	}

	return names
}
