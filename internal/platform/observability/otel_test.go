package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel(" WARN "))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

func TestNewLogger_JSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "", slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("order created", slog.String("order_id", "o-1"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "order created", entry["msg"])
	assert.Equal(t, "o-1", entry["order_id"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "TEXT", slog.LevelInfo).Info("ready")
	assert.Contains(t, buf.String(), "msg=ready")
}

func TestInit_WithoutExporter(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "none")
	t.Setenv("LOG_LEVEL", "error")

	instruments, shutdown, err := Init(context.Background(), "orders-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	assert.NotNil(t, instruments.Logger)
	assert.NotNil(t, instruments.Tracer("test"))
	assert.NotNil(t, instruments.Meter("test"))
}

func TestDiscardAndNilInstruments(t *testing.T) {
	var nilInstruments *Instruments
	assert.NotNil(t, nilInstruments.Tracer("x"))
	assert.NotNil(t, nilInstruments.Meter("x"))

	d := Discard()
	_, span := d.Tracer("x").Start(context.Background(), "op")
	span.End()
	assert.False(t, span.SpanContext().IsValid())
}
