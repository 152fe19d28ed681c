package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("hidden id=%d", 1)
	log.Warn("shown id=%d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown id=2")
}

func TestLogger_UnknownLevel(t *testing.T) {
	_, err := NewWithWriter(&bytes.Buffer{}, "verbose")
	assert.Error(t, err)
}

func TestLogger_FileOutput(t *testing.T) {
	path := t.TempDir() + "/logs/app.log"
	log, err := New(path, "debug")
	require.NoError(t, err)
	log.Debug("written to file")
	require.NoError(t, log.Close())
}
