package log

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	require.NoError(t, Init(true))
	assert.True(t, GetZapLogger().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init(false))
	assert.False(t, GetZapLogger().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, GetZapLogger().Core().Enabled(zapcore.InfoLevel))
	assert.Same(t, GetSugaredLogger().Desugar().Core(), GetZapLogger().Core())

	Infow("logger ready", "debug", false)
	Sync()
}

func TestFallbackLogger(t *testing.T) {
	log, baseLogger = nil, nil
	assert.NotNil(t, GetSugaredLogger())
	assert.NotNil(t, GetZapLogger())
}

func TestWrappersReportCallerSite(t *testing.T) {
	require.NoError(t, Init(true))
	core, logs := observer.New(zapcore.DebugLevel)
	log = GetZapLogger().WithOptions(zap.WrapCore(func(zapcore.Core) zapcore.Core { return core })).Sugar()

	Warnw("caller check", "n", 1)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.True(t, entries[0].Caller.Defined)
	assert.Equal(t, "log_test.go", filepath.Base(entries[0].Caller.File))
}
