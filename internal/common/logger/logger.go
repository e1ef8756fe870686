package logger

import (
	"context"
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Logger defines the minimal logging interface used across renderers and the HTTP layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger
	With(fields map[string]interface{}) Logger
}

// Options mirrors the logging section of the service config.
type Options struct {
	Level  string
	Format string // "json" or "console"
	Output string // "stdout", "stderr" or a file path
	// Fields are attached to every entry, e.g. service and version.
	Fields map[string]interface{}
}

// ParseLevel maps a config level name to a zap level. Unknown names log at info.
func ParseLevel(name string) zapcore.Level {
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// New builds the zap logger described by opts.
func New(opts Options) *zap.Logger {
	level := ParseLevel(opts.Level)

	cfg := zap.NewDevelopmentConfig()
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	if opts.Output != "" {
		cfg.OutputPaths = []string{opts.Output}
	}

	l, err := cfg.Build(zap.Fields(toZapFields(opts.Fields)...))
	if err != nil {
		// unwritable output path
		l = zap.New(zapcore.NewCore(
			zapcore.NewJSONEncoder(cfg.EncoderConfig),
			zapcore.Lock(os.Stderr),
			level,
		), zap.Fields(toZapFields(opts.Fields)...))
		l.Warn("log output unavailable, writing to stderr", zap.String("output", opts.Output), zap.Error(err))
	}
	return l
}

// NewStructured creates a Logger from opts.
func NewStructured(opts Options) Logger {
	return Wrap(New(opts))
}

// Wrap adapts an existing *zap.Logger to the Logger interface.
func Wrap(l *zap.Logger) Logger {
	return &zapLogger{base: l}
}

// NewTestLogger routes log output through t.Log.
func NewTestLogger(t testing.TB) Logger {
	return Wrap(zaptest.NewLogger(t))
}

// NewNoOpLogger discards everything.
func NewNoOpLogger() Logger {
	return Wrap(zap.NewNop())
}

type zapLogger struct {
	base *zap.Logger
}

func (z *zapLogger) log(level zapcore.Level, msg string, fields map[string]interface{}) {
	if ce := z.base.Check(level, msg); ce != nil {
		ce.Write(toZapFields(fields)...)
	}
}

func (z *zapLogger) Debug(msg string, fields map[string]interface{}) {
	z.log(zapcore.DebugLevel, msg, fields)
}

func (z *zapLogger) Info(msg string, fields map[string]interface{}) {
	z.log(zapcore.InfoLevel, msg, fields)
}

func (z *zapLogger) Warn(msg string, fields map[string]interface{}) {
	z.log(zapcore.WarnLevel, msg, fields)
}

func (z *zapLogger) Error(msg string, fields map[string]interface{}) {
	z.log(zapcore.ErrorLevel, msg, fields)
}

func (z *zapLogger) WithFields(fields map[string]interface{}) Logger {
	if len(fields) == 0 {
		return z
	}
	return &zapLogger{base: z.base.With(toZapFields(fields)...)}
}

func (z *zapLogger) WithError(err error) Logger {
	return &zapLogger{base: z.base.With(zap.Error(err))}
}

// With is an alias for WithFields.
func (z *zapLogger) With(fields map[string]interface{}) Logger {
	return z.WithFields(fields)
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

type ctxKey struct{}

// IntoContext stores a request-scoped logger on ctx.
func IntoContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored by IntoContext, or fallback when there is none.
func FromContext(ctx context.Context, fallback Logger) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok && l != nil {
		return l
	}
	return fallback
}
