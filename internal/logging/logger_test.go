package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RenamesErrorKey(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, slog.LevelInfo).Info("speed rejected", "error", errors.New("not a number"))

	assert.Contains(t, buf.String(), `err="not a number"`)
	assert.NotContains(t, buf.String(), "error=")
}

func TestOpen_ReturnsNop_When_PathEmpty(t *testing.T) {
	t.Parallel()

	logger, closeFn, err := Open("", true)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, closeFn())
}

func TestOpen_WritesDebugOnlyWhenEnabled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, tc := range []struct {
		debug bool
		want  bool
	}{{true, true}, {false, false}} {
		path := filepath.Join(dir, "debug.log")
		require.NoError(t, os.RemoveAll(path))

		logger, closeFn, err := Open(path, tc.debug)
		require.NoError(t, err)
		logger.Debug("engine started")
		logger.Info("end of input")
		require.NoError(t, closeFn())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "end of input")
		assert.Equal(t, tc.want, bytes.Contains(data, []byte("engine started")))
	}
}

func TestOpen_ReturnsError_When_DirectoryMissing(t *testing.T) {
	t.Parallel()

	_, _, err := Open(filepath.Join(t.TempDir(), "nope", "x.log"), false)
	assert.Error(t, err)
}
