package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := &Logger{level: level, fields: make(map[string]interface{})}
	logger.AddOutput(NewConsoleOutput(buf, FormatText))
	return logger, buf
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "[WARN] warn message")
	assert.Contains(t, out, "[ERROR] error message")
}

func TestLoggerFormatted(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)
	logger.Infof("served %d requests in %s", 3, "12ms")
	assert.Contains(t, buf.String(), "served 3 requests in 12ms")
}

func TestLoggerWithFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)
	logger.With(Field{Key: "chapter", Value: 7}).Info("expanded")

	out := buf.String()
	assert.Contains(t, out, "expanded")
	assert.Contains(t, out, "chapter=7")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"fatal", LevelFatal},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.input), "level %q", tt.input)
	}
}

func TestRenderEntryJSON(t *testing.T) {
	entry := LogEntry{
		Timestamp: time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC),
		Level:     "INFO",
		Message:   "hello",
		Fields:    map[string]interface{}{"n": 1},
	}

	line, err := renderEntry(entry, FormatJSON)
	require.NoError(t, err)

	var decoded LogEntry
	require.NoError(t, sonic.Unmarshal([]byte(line), &decoded))
	assert.Equal(t, "INFO", decoded.Level)
	assert.Equal(t, "hello", decoded.Message)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	out, err := NewFileOutput(path, FormatText)
	require.NoError(t, err)

	require.NoError(t, out.Write(LogEntry{
		Timestamp: time.Now(), Level: "INFO", Message: "to file",
	}))
	require.NoError(t, out.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "to file"))
}
