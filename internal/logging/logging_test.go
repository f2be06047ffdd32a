package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zap.InfoLevel, level)

	level, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zap.DebugLevel, level)

	level, err = ParseLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, zap.WarnLevel, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	logger, err := New("error", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.ErrorLevel))

	dev, err := New("debug", true)
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zap.DebugLevel))

	_, err = New("loud", false)
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger := zap.NewExample()
	assert.Same(t, logger, OrNop(logger))
}
