package observability

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/trace"
)

// LogLevel is the minimum severity a Logger emits
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levels = [...]struct {
	name string
	slog slog.Level
}{
	DebugLevel: {"DEBUG", slog.LevelDebug},
	InfoLevel:  {"INFO", slog.LevelInfo},
	WarnLevel:  {"WARN", slog.LevelWarn},
	ErrorLevel: {"ERROR", slog.LevelError},
}

func (l LogLevel) valid() bool {
	return l >= DebugLevel && l <= ErrorLevel
}

func (l LogLevel) String() string {
	if !l.valid() {
		return levels[InfoLevel].name
	}
	return levels[l].name
}

func (l LogLevel) slogLevel() slog.Level {
	if !l.valid() {
		return slog.LevelInfo
	}
	return levels[l].slog
}

// ParseLogLevel parses a DOCS_LOG_LEVEL value, defaulting to InfoLevel
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger writes JSON log lines for the docs server. Derived loggers carry
// their parent's fields.
type Logger struct {
	logger *slog.Logger
	level  LogLevel
}

// NewLogger creates a JSON logger writing to output, stdout when nil
func NewLogger(level LogLevel, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}
	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level.slogLevel()})
	return &Logger{logger: slog.New(handler), level: level}
}

// Level returns the minimum level the logger emits
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...), level: l.level}
}

// WithField adds one field
func (l *Logger) WithField(key string, value any) *Logger {
	return l.with(key, value)
}

// WithFields adds alternating key/value pairs
func (l *Logger) WithFields(keyvals ...any) *Logger {
	return l.with(keyvals...)
}

// WithError adds err under "error". A nil error returns l.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.with("error", err.Error())
}

// WithRequest adds the request line
func (l *Logger) WithRequest(r *http.Request) *Logger {
	return l.with("method", r.Method, "path", r.URL.Path)
}

// WithGeneration tags lines with the site config generation they refer to
func (l *Logger) WithGeneration(gen uint64) *Logger {
	return l.with("config_generation", gen)
}

func (l *Logger) Debug(message string) { l.logger.Debug(message) }
func (l *Logger) Info(message string)  { l.logger.Info(message) }
func (l *Logger) Warn(message string)  { l.logger.Warn(message) }
func (l *Logger) Error(message string) { l.logger.Error(message) }

type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
)

// WithRequestID stores the request ID in ctx
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID stored by WithRequestID
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithLogger stores logger in ctx
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

var defaultLogger = sync.OnceValue(func() *Logger {
	return NewLogger(InfoLevel, os.Stderr)
})

// FromContext returns the logger stored in ctx, or a process default, tagged
// with the request ID and the active trace span when present.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(loggerKey).(*Logger)
	if !ok {
		logger = defaultLogger()
	}
	if id := RequestID(ctx); id != "" {
		logger = logger.with("request_id", id)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		logger = logger.with("trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
	}
	return logger
}
