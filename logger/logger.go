package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ILogger is the logging interface used throughout the application
type ILogger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Warning(msg string, fields ...Field)
}

type logger struct {
	zap *zap.Logger
}

func (l logger) Info(msg string, fields ...Field) {
	l.zap.Info(msg, fields...)
}

func (l logger) Error(msg string, fields ...Field) {
	l.zap.Error(msg, fields...)
}

func (l logger) Warning(msg string, fields ...Field) {
	l.zap.Warn(msg, fields...)
}

// New creates a logger scoped to the given service name
func New(service string) ILogger {
	return logger{
		zap: newZapLogger(service),
	}
}

// Cleanup flushes any buffered log entries
func Cleanup(l ILogger) {
	if lg, ok := l.(logger); ok {
		_ = lg.zap.Sync()
	}
}

func newZapLogger(service string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.InitialFields = map[string]interface{}{
		"service": service,
	}

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return l
}
