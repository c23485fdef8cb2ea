package cqlbridge

import (
	"github.com/arloliu/cqlbridge/internal/logging"
	"github.com/arloliu/cqlbridge/internal/metrics"
	"github.com/arloliu/cqlbridge/types"
)

// Config holds the ambient dependencies shared by a session and every
// future, statement and batch created through it.
type Config struct {
	Logger  types.Logger
	Metrics MetricsCollector
}

// DefaultConfig returns a Config that discards logs and metrics.
//
// Returns:
//   - *Config: Configuration with default settings
func DefaultConfig() *Config {
	return &Config{
		Logger:  logging.NewNopLogger(),
		Metrics: metrics.NewNopMetrics(),
	}
}

// Option configures a Config.
type Option func(*Config)

// WithLogger sets the structured logger.
//
// If not set, a no-op logger is used that discards all messages.
// Use contrib/logging/zap to route messages to a zap logger.
//
// Parameters:
//   - logger: The logger implementation
//
// Returns:
//   - Option: Configuration option
//
// Example:
//
//	logger, _ := zap.NewProduction()
//	session := cqlbridge.NewSession(driver,
//	    cqlbridge.WithLogger(zaplog.New(logger.Sugar())),
//	)
func WithLogger(logger types.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMetrics sets the metrics collector.
//
// If not set, a no-op collector is used that discards all metrics.
// Use contrib/metrics/vm.New() for VictoriaMetrics integration.
//
// Parameters:
//   - collector: The metrics collector implementation
//
// Returns:
//   - Option: Configuration option
func WithMetrics(collector MetricsCollector) Option {
	return func(c *Config) {
		c.Metrics = collector
	}
}

func newConfig(opts []Option) *Config {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	// Ensure logger and metrics are never nil
	if config.Logger == nil {
		config.Logger = logging.NewNopLogger()
	}
	if config.Metrics == nil {
		config.Metrics = metrics.NewNopMetrics()
	}

	return config
}
