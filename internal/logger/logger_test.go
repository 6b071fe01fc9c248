package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, false)

	log.Debug("cache", "hidden")
	log.Info("cache", "shown")
	log.Warn("gateway", "careful")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO  [CACHE     ] shown")
	assert.Contains(t, out, "WARN  [GATEWAY   ] careful")
}

func TestWriterLogger_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, true)

	log.LogCache("HIT", "user_location", "served from cache")
	assert.Contains(t, buf.String(), "[HIT] user_location - served from cache")
}

func TestFatal_CallsExit(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, false)
	code := -1
	log.exit = func(c int) { code = c }

	log.Fatal("app", "giving up")
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "giving up")
}

func TestNilLogger(t *testing.T) {
	var log *Logger
	assert.NotPanics(t, func() {
		log.Info("app", "nobody listens")
		log.Close()
	})
}

func TestNewLogger_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	log := NewLogger(Options{Dir: dir, Prefix: "test"})
	log.LogAPI("GET", "/api/resorts", "200", "1ms")
	log.Close()

	matches, err := filepath.Glob(filepath.Join(dir, "test-*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	f, err := os.Open(matches[0])
	require.NoError(t, err)
	defer f.Close()

	var found bool
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry LogEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		if entry.Category == "API" {
			found = true
			assert.Equal(t, "INFO", entry.Level)
			assert.Equal(t, "GET /api/resorts - 200 (1ms)", entry.Message)
		}
	}
	assert.True(t, found)
}
