package port

// Fields представляет дополнительные поля для структурированного логирования
type Fields map[string]interface{}

// LoggerPort определяет универсальный интерфейс для логирования
type LoggerPort interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)

	// WithFields возвращает новый логгер с добавленным контекстом
	WithFields(fields Fields) LoggerPort
}
