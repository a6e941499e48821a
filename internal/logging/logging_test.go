package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, Level(false, false))
	assert.Equal(t, zapcore.DebugLevel, Level(false, true))
	assert.Equal(t, zapcore.ErrorLevel, Level(true, false))
	assert.Equal(t, zapcore.ErrorLevel, Level(true, true))
}

func TestNew(t *testing.T) {
	logger, err := New(true, false)
	require.NoError(t, err)
	assert.False(t, logger.Desugar().Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Desugar().Core().Enabled(zapcore.ErrorLevel))
}
