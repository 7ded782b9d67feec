package rabbitmq

import (
	"fmt"

	"github.com/HRMetriX/couriesr-mules-project/internal/core/port"
	"github.com/HRMetriX/couriesr-mules-project/pkg/rabbitmq/rabbitmq_common"
)

// pkgLoggerBridge транслирует логи пакета rabbitmq в основной логгер приложения
type pkgLoggerBridge struct {
	logger port.LoggerPort
}

func NewPkgLoggerBridge(logger port.LoggerPort) rabbitmq_common.Logger {
	return &pkgLoggerBridge{logger: logger}
}

func (l *pkgLoggerBridge) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (l *pkgLoggerBridge) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (l *pkgLoggerBridge) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (l *pkgLoggerBridge) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, err, fieldsFromKeysAndValues(keysAndValues))
}

func fieldsFromKeysAndValues(keysAndValues []interface{}) port.Fields {
	fields := make(port.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
