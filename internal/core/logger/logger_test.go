package logger

import (
	"bytes"
	"encoding/json"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestBuildJSON(t *testing.T) {
	var buf bytes.Buffer
	l, flush := Build(Options{Level: "warn", JSON: true, Output: zapcore.AddSync(&buf)})

	l.Info("dropped")
	l.Warn("kept")
	flush()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.Contains(t, entry, "ts")
}

func TestBuildBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, _ := Build(Options{Level: "chatty", JSON: true, Output: zapcore.AddSync(&buf)})

	l.Debug("hidden")
	l.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestToWriterAndStdLogger(t *testing.T) {
	var buf bytes.Buffer
	l, _ := Build(Options{Level: "debug", JSON: true, Output: zapcore.AddSync(&buf)})

	_, err := ToWriter(l, zapcore.ErrorLevel).Write([]byte("gin says hi\n"))
	require.NoError(t, err)

	std, err := ToStdLogger(l, zapcore.WarnLevel)
	require.NoError(t, err)
	std.Print("tls handshake error")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "gin says hi", first["msg"])
	assert.Equal(t, "error", first["level"])
	assert.Equal(t, "tls handshake error", second["msg"])
	assert.Equal(t, "warn", second["level"])
}

func TestRedirectStdLog(t *testing.T) {
	var buf bytes.Buffer
	l, _ := Build(Options{Level: "info", JSON: true, Output: zapcore.AddSync(&buf)})

	undo := RedirectStdLog(l, zapcore.InfoLevel)
	log.Print("from std")
	undo()

	assert.Contains(t, buf.String(), "from std")
}

func TestBuildStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l, _ := Build(Options{Level: "info", JSON: true, Component: "admin", Output: zapcore.AddSync(&buf)})
	l.Info("ready")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "admin", entry["component"])
}
