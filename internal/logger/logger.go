package logger

import (
	"context"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey struct{}

//nolint:gochecknoglobals // A single process-wide logger keeps call sites simple.
var (
	// globalLevel is the dynamic level shared by loggers created without an explicit level.
	globalLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	// globalLogger is the process-wide logger used when the context carries no logger.
	globalLogger *zap.Logger

	// globalMutex guards globalLogger.
	globalMutex sync.RWMutex

	// loggerContextKey is the context key under which a request-scoped logger is stored.
	loggerContextKey = contextKey{}
)

//nolint:gochecknoinits // The package must be usable before any configuration is loaded.
func init() {
	globalLogger = New(globalLevel)
}

// New creates and returns a new zap logger writing to stderr with a console encoder.
// If level is nil, the logger follows the package-wide dynamic level.
func New(level zapcore.LevelEnabler, options ...zap.Option) *zap.Logger {
	if level == nil {
		level = globalLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)

	return zap.New(core, options...)
}

// Logger returns the current process-wide logger.
func Logger() *zap.Logger {
	globalMutex.RLock()
	defer globalMutex.RUnlock()

	return globalLogger
}

// SetLogger replaces the process-wide logger.
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		return
	}

	globalMutex.Lock()
	defer globalMutex.Unlock()

	globalLogger = logger
}

// Level returns the current package-wide logging level.
func Level() zapcore.Level {
	return globalLevel.Level()
}

// SetLevel sets the package-wide logging level.
func SetLevel(level zapcore.Level) {
	globalLevel.SetLevel(level)
}

// IsDebugLevel reports whether debug-level messages are currently enabled.
func IsDebugLevel() bool {
	return globalLevel.Enabled(zapcore.DebugLevel)
}

// ParseLogLevel parses a textual log level such as "debug" or "info".
// Leading and trailing whitespace and letter case are ignored.
// It returns the parsed level and true, or InfoLevel and false if the input is not recognized.
func ParseLogLevel(level string) (zapcore.Level, bool) {
	parsed, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel, false
	}

	return parsed, true
}

// ToContext returns a copy of ctx carrying the provided logger.
// Subsequent package-level logging calls with that context use the stored logger.
func ToContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext returns the logger stored in ctx, falling back to the process-wide logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerContextKey).(*zap.Logger); ok && logger != nil {
			return logger
		}
	}

	return Logger()
}

// Debug logs a message at debug level.
func Debug(ctx context.Context, msg string) {
	FromContext(ctx).Debug(msg)
}

// Debugf logs a formatted message at debug level.
func Debugf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Debugf(format, args...)
}

// DebugKV logs a message at debug level with alternating key-value pairs.
func DebugKV(ctx context.Context, msg string, kvs ...any) {
	FromContext(ctx).Sugar().Debugw(msg, kvs...)
}

// Info logs a message at info level.
func Info(ctx context.Context, msg string) {
	FromContext(ctx).Info(msg)
}

// Infof logs a formatted message at info level.
func Infof(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Infof(format, args...)
}

// InfoKV logs a message at info level with alternating key-value pairs.
func InfoKV(ctx context.Context, msg string, kvs ...any) {
	FromContext(ctx).Sugar().Infow(msg, kvs...)
}

// Warn logs a message at warn level.
func Warn(ctx context.Context, msg string) {
	FromContext(ctx).Warn(msg)
}

// Warnf logs a formatted message at warn level.
func Warnf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Warnf(format, args...)
}

// WarnKV logs a message at warn level with alternating key-value pairs.
func WarnKV(ctx context.Context, msg string, kvs ...any) {
	FromContext(ctx).Sugar().Warnw(msg, kvs...)
}

// Error logs a message at error level.
func Error(ctx context.Context, msg string) {
	FromContext(ctx).Error(msg)
}

// Errorf logs a formatted message at error level.
func Errorf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Errorf(format, args...)
}

// ErrorKV logs a message at error level with alternating key-value pairs.
func ErrorKV(ctx context.Context, msg string, kvs ...any) {
	FromContext(ctx).Sugar().Errorw(msg, kvs...)
}

// Fatal logs a message at fatal level and exits the process.
func Fatal(ctx context.Context, msg string) {
	FromContext(ctx).Fatal(msg)
}

// Fatalf logs a formatted message at fatal level and exits the process.
func Fatalf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Sugar().Fatalf(format, args...)
}
