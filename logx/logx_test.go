package logx

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", "lines", 3)

	entries := parseEntries(t, buf.Bytes())
	require.Len(t, entries, 1)
	assert.EqualValues(t, 3, entries[0]["lines"])
}

func TestOptionsRejectsUnknownLevel(t *testing.T) {
	_, err := Options("loud")
	assert.ErrorContains(t, err, "unknown log level")

	for _, lvl := range Levels {
		_, err := Options(lvl)
		assert.NoError(t, err, lvl)
	}
}

func TestOpenWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pager.log")
	logger, closer, err := Open(path, "debug")
	require.NoError(t, err)

	ctx := Install(context.Background(), logger)
	Ctx(ctx).Debug("opened", "path", path)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	entries := parseEntries(t, data)
	require.Len(t, entries, 1)
	assert.Equal(t, path, entries[0]["path"])
}

func TestOpenDiscard(t *testing.T) {
	logger, closer, err := Open("off", "info")
	require.NoError(t, err)
	logger.Info("nowhere")
	assert.NoError(t, closer.Close())
}

func parseEntries(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal(line, &entry), string(line))
		out = append(out, entry)
	}
	return out
}
