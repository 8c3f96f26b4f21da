package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	l := NewIsolatedLogger(path)

	l.Info("WORKFLOW", "stage finished", map[string]interface{}{"stage": "EXPAND"})
	l.Error("WORKFLOW", "stage failed", map[string]interface{}{"error": "boom"})
	l.Debug("WORKFLOW", "nil details", nil)
	require.NoError(t, l.Sync())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}

	require.Len(t, lines, 3)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "WORKFLOW", lines[0]["module"])
	assert.Equal(t, "stage finished", lines[0]["message"])
	assert.Equal(t, "boom", lines[1]["error_ref"])
	assert.Equal(t, map[string]interface{}{}, lines[2]["details"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	assert.NotPanics(t, func() {
		l.Warn("X", "ignored", nil)
		_ = l.Sync()
	})
}
