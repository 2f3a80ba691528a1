package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapLogger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Fatal(msg string, fields ...zap.Field)
	With(fields ...zap.Field) ZapLogger
	Sync() error
}

type ZapLoggerConfig struct {
	IsDevelopment     bool
	Encoding          string
	Level             string
	DisableCaller     bool
	DisableStacktrace bool
}

type zapLogger struct {
	*zap.Logger
}

// NewZapLogger builds a logger from cfg. It falls back to a no-op logger
// when the zap config cannot be built so callers never get nil.
func NewZapLogger(cfg *ZapLoggerConfig) ZapLogger {
	var zcfg zap.Config
	if cfg.IsDevelopment {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.TimeKey = "timestamp"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if cfg.Encoding != "" {
		zcfg.Encoding = cfg.Encoding
	}
	zcfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	zcfg.DisableCaller = cfg.DisableCaller
	zcfg.DisableStacktrace = cfg.DisableStacktrace
	zcfg.OutputPaths = []string{"stdout"}

	l, err := zcfg.Build()
	if err != nil {
		return NewNop()
	}
	return &zapLogger{Logger: l}
}

// FromZap wraps an existing zap logger, e.g. one from zaptest.
func FromZap(l *zap.Logger) ZapLogger {
	return &zapLogger{Logger: l}
}

func NewNop() ZapLogger {
	return &zapLogger{Logger: zap.NewNop()}
}

func (l *zapLogger) With(fields ...zap.Field) ZapLogger {
	return &zapLogger{Logger: l.Logger.With(fields...)}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
