package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

type contextKey string

const correlationIDContextKey contextKey = "correlation_id"

// Init builds the global logger. Production gets JSON with ISO-8601
// timestamps; everything else gets the colored console encoder. LOG_LEVEL
// overrides the default level when set.
func Init(environment string) error {
	cfg := configFor(environment)

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		level, err := zapcore.ParseLevel(raw)
		if err != nil {
			return err
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	log = built

	return nil
}

func configFor(environment string) zap.Config {
	if environment == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

// Get returns the global logger, falling back to a development logger when
// Init was never called (tests, mostly).
func Get() *zap.Logger {
	if log == nil {
		log, _ = zap.NewDevelopment()
	}
	return log
}

// WithContext returns the logger enriched with the request's correlation ID,
// when the context carries one.
func WithContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return Get()
	}
	if id := CorrelationIDFromContext(ctx); id != "" {
		return Get().With(zap.String(string(correlationIDContextKey), id))
	}
	return Get()
}

// ContextWithCorrelationID stores a correlation ID on the context.
func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, correlationIDContextKey, correlationID)
}

// CorrelationIDFromContext extracts the correlation ID, or "" when absent.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDContextKey).(string)
	return id
}

func Debug(msg string, fields ...zap.Field) { Get().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { Get().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { Get().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Get().Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { Get().Fatal(msg, fields...) }

// Context-aware variants attach the correlation ID before logging.

func InfoContext(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Info(msg, fields...)
}

func WarnContext(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Warn(msg, fields...)
}

func ErrorContext(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Error(msg, fields...)
}

// Sync flushes buffered entries. Safe to defer before Init.
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}
