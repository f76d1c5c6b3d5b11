package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var fields map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	return fields
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WarnLevel, &buf)

	logger.Info("ignored")
	assert.Zero(t, buf.Len())

	logger.Warn("2 findings")
	fields := decodeLine(t, &buf)
	assert.Equal(t, "WARN", fields["level"])
	assert.Equal(t, "2 findings", fields["msg"])
	assert.Equal(t, WarnLevel, logger.Level())
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(DebugLevel, &buf).
		WithField("key", "LIST_TABLES").
		WithFields("group", "table", "cached", true).
		WithGeneration(3).
		WithError(errors.New("boom"))

	logger.Debug("rendered")
	fields := decodeLine(t, &buf)
	assert.Equal(t, "DEBUG", fields["level"])
	assert.Equal(t, "LIST_TABLES", fields["key"])
	assert.Equal(t, "table", fields["group"])
	assert.Equal(t, true, fields["cached"])
	assert.Equal(t, float64(3), fields["config_generation"])
	assert.Equal(t, "boom", fields["error"])
}

func TestLogger_WithRequest(t *testing.T) {
	var buf bytes.Buffer
	r := httptest.NewRequest(http.MethodGet, "/catalog/HEALTH?x=1", nil)
	NewLogger(InfoLevel, &buf).WithRequest(r).Info("request")

	fields := decodeLine(t, &buf)
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/catalog/HEALTH", fields["path"])
}

func TestLogger_WithNilError(t *testing.T) {
	logger := NewLogger(InfoLevel, &bytes.Buffer{})
	assert.Same(t, logger, logger.WithError(nil))
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"warning": WarnLevel,
		" error ": ErrorLevel,
		"bogus":   InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "INFO", LogLevel(42).String())
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), NewLogger(InfoLevel, &buf))
	ctx = WithRequestID(ctx, "req-1")

	assert.Equal(t, "req-1", RequestID(ctx))
	FromContext(ctx).Info("hello")

	fields := decodeLine(t, &buf)
	assert.Equal(t, "req-1", fields["request_id"])
	assert.NotContains(t, fields, "trace_id")
	assert.Empty(t, RequestID(context.Background()))
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromContext_TraceIDs(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), NewLogger(InfoLevel, &buf))
	ctx, span := tp.Tracer("test").Start(ctx, "render")
	defer span.End()

	FromContext(ctx).Info("traced")
	fields := decodeLine(t, &buf)
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
}
