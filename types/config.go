package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ClusterConfig holds the connection parameters handed to the native driver
// when a cluster handle is created.
type ClusterConfig struct {
	// ContactPoints are the initial hosts used to discover the cluster.
	ContactPoints []string `yaml:"contact_points"`

	// Port is the native protocol port. Defaults to 9042.
	Port int `yaml:"port"`

	// ProtocolVersion pins the native protocol version. Zero lets the
	// driver negotiate.
	ProtocolVersion int `yaml:"protocol_version"`

	// Consistency is the default consistency for requests that do not set one.
	Consistency Consistency `yaml:"consistency"`

	// ConnectTimeout bounds the initial connection to each host.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`

	// RequestTimeout bounds each request. This is the only timeout a caller
	// can influence; the wrapper adds none of its own.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// NumConnsPerHost is the number of connections opened to each host.
	NumConnsPerHost int `yaml:"num_conns_per_host"`

	// Username and Password enable password authentication when Username is set.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// LocalDC enables DC-aware host selection when set.
	LocalDC string `yaml:"local_dc"`
}

// DefaultClusterConfig returns a ClusterConfig with the native driver's
// usual defaults and no contact points.
func DefaultClusterConfig() ClusterConfig {
	return ClusterConfig{
		Port:            9042,
		Consistency:     LocalOne,
		ConnectTimeout:  5 * time.Second,
		RequestTimeout:  12 * time.Second,
		NumConnsPerHost: 1,
	}
}

// Validate checks that the configuration can be handed to the native driver.
//
// Returns:
//   - error: Validation error wrapping ErrInvalidConfig or ErrInvalidEncoding,
//     or nil if valid
func (c ClusterConfig) Validate() error {
	if len(c.ContactPoints) == 0 {
		return fmt.Errorf("%w: at least one contact point is required", ErrInvalidConfig)
	}
	for _, host := range c.ContactPoints {
		if strings.TrimSpace(host) == "" {
			return fmt.Errorf("%w: contact point cannot be empty", ErrInvalidConfig)
		}
		if idx := strings.IndexByte(host, 0); idx >= 0 {
			return &EncodingError{Field: "contact point", Offset: idx, Reason: "embedded NUL"}
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.ProtocolVersion < 0 || c.ProtocolVersion > 5 {
		return fmt.Errorf("%w: unsupported protocol version %d", ErrInvalidConfig, c.ProtocolVersion)
	}
	if c.ConnectTimeout < 0 || c.RequestTimeout < 0 {
		return errors.Join(ErrInvalidConfig, errors.New("timeouts cannot be negative"))
	}
	if c.NumConnsPerHost < 0 {
		return fmt.Errorf("%w: num_conns_per_host cannot be negative", ErrInvalidConfig)
	}
	if c.Password != "" && c.Username == "" {
		return fmt.Errorf("%w: password set without username", ErrInvalidConfig)
	}

	return nil
}
