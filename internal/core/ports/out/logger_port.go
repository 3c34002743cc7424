package out

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

// Rank orders levels so adapters can filter below a minimum.
func (l LogLevel) Rank() int {
	switch l {
	case LogLevelDebug:
		return 0
	case LogLevelInfo:
		return 1
	case LogLevelWarn:
		return 2
	case LogLevelError:
		return 3
	}
	return 1
}

type LogFields map[string]interface{}

type LoggerPort interface {
	Debug(event string, fields LogFields)
	Info(event string, fields LogFields)
	Warn(event string, fields LogFields)
	Error(event string, fields LogFields)
	WithFields(fields LogFields) LoggerPort
	WithModule(module string) LoggerPort
}
