package debug

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	rtdebug "runtime/debug"
	"sync"
	"sync/atomic"
)

// EnvPath names the environment variable holding the debug log file path.
const EnvPath = "SCENE_DEBUG"

// nopHandler is a slog.Handler that discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var (
	loggerPtr atomic.Pointer[slog.Logger]

	mu      sync.Mutex
	logFile *os.File
)

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs l as the package logger. Pass nil to restore silence.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// Init opens path for appending and installs a debug-level text logger
// writing to it. If path is empty, uses "scene-debug.log".
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		path = "scene-debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return nil
}

// InitFromEnv calls Init when SCENE_DEBUG is set.
func InitFromEnv() error {
	path, ok := os.LookupEnv(EnvPath)
	if !ok {
		return nil
	}
	return Init(path)
}

// Close closes the debug log file and restores the silent logger.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	SetLogger(nil)
	err := logFile.Close()
	logFile = nil
	return err
}

// Log writes a formatted debug-level message.
func Log(format string, args ...any) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug(fmt.Sprintf(format, args...))
}

// Warn logs a warning tagged with the subsystem that raised it.
func Warn(tag, msg string, args ...any) {
	Logger().Warn(msg, append([]any{slog.String("tag", tag)}, args...)...)
}

// Error logs an error tagged with the subsystem that raised it.
func Error(tag, msg string, args ...any) {
	Logger().Error(msg, append([]any{slog.String("tag", tag)}, args...)...)
}

// Fatal logs msg with the current stack and aborts via panic.
// It is reserved for invariant violations detected in diagnostic mode.
func Fatal(tag, msg string, args ...any) {
	Logger().Error(msg, append([]any{slog.String("tag", tag), slog.String("stack", string(rtdebug.Stack()))}, args...)...)
	panic(fmt.Sprintf("%s: %s", tag, msg))
}

// Stack returns the current goroutine stack for inclusion in log records.
func Stack() string {
	return string(rtdebug.Stack())
}
