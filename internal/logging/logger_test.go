package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "warn"}, &buf)
	require.NoError(t, err)
	defer l.Close()

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.NotContains(t, buf.String(), "\x1b[", "no colours on a buffer")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_TagsEntries(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "debug", JSONFormat: true}, &buf)
	require.NoError(t, err)

	l.Run().Debug("walking")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "walking", entry["msg"])
	assert.Len(t, entry["run_id"], 36)
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "git-hours.log")
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", OutputFile: path}, &buf)
	require.NoError(t, err)

	l.Info("to both")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
	assert.Equal(t, path, l.FilePath())
}

func TestRotateIfNeeded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "git-hours.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 64)), 0644))
	require.NoError(t, os.WriteFile(path+".1", []byte("older"), 0644))

	l, err := New(Config{Level: "info", OutputFile: path, MaxSize: 32, MaxBackups: 2}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, l.Close())

	rotated, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Len(t, rotated, 64)

	older, err := os.ReadFile(path + ".2")
	require.NoError(t, err)
	assert.Equal(t, "older", string(older))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestRotateIfNeeded_NoBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "git-hours.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 64)), 0644))

	l, err := New(Config{Level: "info", OutputFile: path, MaxSize: 32, MaxBackups: 0}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, l.Close())

	_, err = os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err), "no backup is kept")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestNew_NegativeBackups(t *testing.T) {
	_, err := New(Config{Level: "info", OutputFile: filepath.Join(t.TempDir(), "x.log"), MaxBackups: -1}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestClose_Twice(t *testing.T) {
	l, err := New(Config{Level: "info", OutputFile: filepath.Join(t.TempDir(), "x.log")}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.NoError(t, l.Close())
	assert.NoError(t, l.Close())
}
