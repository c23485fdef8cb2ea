package zap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	zaplog "github.com/arloliu/cqlbridge/contrib/logging/zap"
)

func TestLoggerLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zaplog.New(zap.New(core).Sugar())

	logger.Debug("connect submitted", "session", "s1")
	logger.Info("session connected", "session", "s1")
	logger.Warn("free refused", "kind", "session")
	logger.Error("execute failed", "status", "SERVER_INVALID_QUERY")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)

	assert.Equal(t, "execute failed", entries[3].Message)
	assert.Equal(t, "SERVER_INVALID_QUERY", entries[3].ContextMap()["status"])
}

func TestLoggerNamed(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zaplog.New(zap.New(core).Sugar()).Named("cqlbridge")

	logger.Debug("dropped")
	logger.Info("kept")

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, "cqlbridge", entries[0].LoggerName)
}

func TestNewNil(t *testing.T) {
	logger := zaplog.New(nil)

	assert.NotPanics(t, func() {
		logger.Info("discarded", "k", "v")
	})
}
