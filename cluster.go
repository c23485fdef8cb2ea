package cqlbridge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/cqlbridge/native"
	"github.com/arloliu/cqlbridge/types"
)

// Cluster lifecycle states.
const (
	clusterOwned int32 = iota
	clusterConsumed
	clusterReleased
)

// Cluster owns one native cluster configuration.
//
// It is consumed by Session.Connect. A cluster that is never used for a
// connect must be released with Free.
type Cluster struct {
	driver native.Driver
	handle native.ClusterHandle
	config *Config
	cfg    ClusterConfig
	state  atomic.Int32
}

// NewCluster validates cfg and creates a native cluster configuration.
//
// Parameters:
//   - driver: The native driver
//   - cfg: Connection parameters
//   - opts: Optional configuration options
//
// Returns:
//   - *Cluster: A cluster owned by the caller
//   - error: Validation error, or the translated native status
func NewCluster(driver native.Driver, cfg ClusterConfig, opts ...Option) (*Cluster, error) {
	if driver == nil {
		return nil, types.ErrNilDriver
	}
	config := newConfig(opts)

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, types.ErrInvalidEncoding) {
			config.Metrics.IncEncodingError()
		}

		return nil, err
	}

	handle, status := driver.ClusterNew(cfg)
	if err := types.ErrorFromStatus(status, "cluster configuration rejected"); err != nil {
		return nil, err
	}

	return &Cluster{
		driver: driver,
		handle: handle,
		config: config,
		cfg:    cfg,
	}, nil
}

// Config returns a copy of the connection parameters.
func (c *Cluster) Config() ClusterConfig {
	return c.cfg
}

// take marks the cluster consumed by a connect and returns its handle.
func (c *Cluster) take() (native.ClusterHandle, error) {
	if c == nil {
		return 0, fmt.Errorf("%w: nil cluster", types.ErrInvalidConfig)
	}
	if !c.state.CompareAndSwap(clusterOwned, clusterConsumed) {
		return 0, types.ErrResourceReleased
	}

	return c.handle, nil
}

// releaseConsumed frees a cluster consumed by a connect, exactly once.
func (c *Cluster) releaseConsumed() {
	if c.state.CompareAndSwap(clusterConsumed, clusterReleased) {
		c.free()
	}
}

// Free releases a cluster that was not consumed by a connect.
//
// Returns:
//   - error: ErrResourceReleased if already consumed or released
func (c *Cluster) Free() error {
	if !c.state.CompareAndSwap(clusterOwned, clusterReleased) {
		return types.ErrResourceReleased
	}
	c.free()

	return nil
}

func (c *Cluster) free() {
	c.driver.ClusterFree(c.handle)
	c.config.Metrics.IncReleased(types.ResourceCluster)
}

// LoadClusterConfig reads a YAML cluster configuration file.
//
// Fields missing from the file keep the values from DefaultClusterConfig.
//
// Example file:
//
//	contact_points: ["10.0.0.1", "10.0.0.2"]
//	port: 9042
//	consistency: LOCAL_QUORUM
//	request_timeout: 5s
//	local_dc: dc1
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - ClusterConfig: The parsed configuration
//   - error: Error if the file cannot be read or parsed
func LoadClusterConfig(path string) (ClusterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ClusterConfig{}, fmt.Errorf("failed to read cluster config: %w", err)
	}

	cfg, err := ParseClusterConfig(bytes.NewReader(data))
	if err != nil {
		return ClusterConfig{}, fmt.Errorf("failed to parse cluster config %s: %w", path, err)
	}

	return cfg, nil
}

// ParseClusterConfig decodes a YAML cluster configuration on top of
// DefaultClusterConfig. Unknown fields are rejected.
func ParseClusterConfig(r io.Reader) (ClusterConfig, error) {
	cfg := types.DefaultClusterConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return ClusterConfig{}, err
	}

	return cfg, nil
}
