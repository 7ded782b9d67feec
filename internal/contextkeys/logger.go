package contextkeys

import (
	"context"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
)

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// ContextWithLogger кладет логгер в контекст
func ContextWithLogger(ctx context.Context, logger port.LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext достает логгер из контекста.
// Если логгера нет, возвращает no-op заглушку, чтобы не проверять на nil.
func LoggerFromContext(ctx context.Context) port.LoggerPort {
	if logger, ok := ctx.Value(loggerKey).(port.LoggerPort); ok {
		return logger
	}
	return &noopLogger{}
}

type noopLogger struct{}

func (l *noopLogger) Debug(msg string, fields port.Fields)            {}
func (l *noopLogger) Info(msg string, fields port.Fields)             {}
func (l *noopLogger) Warn(msg string, fields port.Fields)             {}
func (l *noopLogger) Error(msg string, err error, fields port.Fields) {}
func (l *noopLogger) WithFields(fields port.Fields) port.LoggerPort   { return l }
