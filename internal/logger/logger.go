package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
)

// ParseLevel maps a configured level name onto a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// Initialize sets up the global logger writing to stdout. Unknown levels
// fall back to info; format is "json" or anything else for text.
func Initialize(level, format string) {
	InitializeWithWriter(os.Stdout, level, format)
}

// InitializeWithWriter is Initialize with an explicit destination.
func InitializeWithWriter(w io.Writer, level, format string) {
	logLevel, _ := ParseLevel(level)
	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
	slog.SetDefault(l)
}

// Get returns the global logger, initializing it at info level on first use.
func Get() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l == nil {
		Initialize("info", "text")
		return Get()
	}
	return l
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

func InfoContext(ctx context.Context, msg string, args ...any) {
	Get().InfoContext(ctx, msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	Get().ErrorContext(ctx, msg, args...)
}

// WithService returns a logger tagged with the owning service or job.
func WithService(serviceName string) *slog.Logger {
	return Get().With("service", serviceName)
}

// EnterMethod logs method entry at debug level.
func EnterMethod(methodName string, args ...any) {
	Get().Debug("→ enter", append([]any{"method", methodName}, args...)...)
}

// ExitMethod logs a successful method exit at debug level.
func ExitMethod(methodName string, args ...any) {
	Get().Debug("← exit", append([]any{"method", methodName}, args...)...)
}

// ExitMethodWithError logs a failed method exit at error level.
func ExitMethodWithError(methodName string, err error, args ...any) {
	Get().Error("← exit with error", append([]any{"method", methodName, "error", err}, args...)...)
}

// DatabaseCall logs a statement about to run against table.
func DatabaseCall(operation, table string, args ...any) {
	Get().Debug("→ db", append([]any{"operation", operation, "table", table}, args...)...)
}

// DatabaseResult logs the outcome of the last DatabaseCall.
func DatabaseResult(operation string, rowsAffected int64, err error, args ...any) {
	allArgs := append([]any{"operation", operation, "rows_affected", rowsAffected}, args...)
	if err != nil {
		Get().Error("← db failed", append(allArgs, "error", err)...)
		return
	}
	Get().Debug("← db ok", allArgs...)
}

// ExternalServiceCall logs a call to a dependency such as the cache.
func ExternalServiceCall(service, operation string, args ...any) {
	Get().Debug("→ external", append([]any{"service", service, "operation", operation}, args...)...)
}

// ExternalServiceResult logs the outcome of an ExternalServiceCall.
func ExternalServiceResult(service, operation string, err error, args ...any) {
	allArgs := append([]any{"service", service, "operation", operation}, args...)
	if err != nil {
		Get().Warn("← external failed", append(allArgs, "error", err)...)
		return
	}
	Get().Debug("← external ok", allArgs...)
}

// Request logs one served API call.
func Request(protocol, method, path string, status int, elapsed time.Duration, args ...any) {
	allArgs := append([]any{
		"protocol", protocol,
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", elapsed.Milliseconds(),
	}, args...)
	if status >= 500 {
		Get().Error("request", allArgs...)
		return
	}
	Get().Info("request", allArgs...)
}
