package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionRe = regexp.MustCompile(`session=[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

func TestNewTagsSession(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo)
	l.Info("hello", "site", "topg")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "site=topg")
	assert.Regexp(t, sessionRe, out)
	assert.NotContains(t, out, "hidden")
}

func TestInitWritesFile(t *testing.T) {
	t.Cleanup(func() { Use(nil) })
	dir := filepath.Join(t.TempDir(), "data")

	closer, err := Init(dir, slog.LevelDebug)
	require.NoError(t, err)
	WithFields("component", "test").Debug("written")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=written")
	assert.Contains(t, string(data), "component=test")
}

func TestUseNilDiscards(t *testing.T) {
	t.Cleanup(func() { Use(nil) })
	Use(nil)
	assert.NotNil(t, Logger())
	Logger().Info("nowhere")
}
