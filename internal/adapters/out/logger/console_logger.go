package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[37m"
)

type ConsoleLogger struct {
	defaultFields out.LogFields
	module        string
	location      *time.Location
	minLevel      out.LogLevel
	colored       bool
	mu            *sync.Mutex
	writer        io.Writer
}

type Option func(*ConsoleLogger)

// WithWriter redirects output, mostly for tests. Colours are disabled for non-stdout writers.
func WithWriter(w io.Writer) Option {
	return func(l *ConsoleLogger) {
		l.writer = w
		l.colored = false
	}
}

func WithMinLevel(level string) Option {
	return func(l *ConsoleLogger) {
		l.minLevel = out.LogLevel(level)
	}
}

func NewConsoleLogger(timezone string, opts ...Option) (*ConsoleLogger, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	l := &ConsoleLogger{
		defaultFields: make(out.LogFields),
		location:      loc,
		minLevel:      out.LogLevelInfo,
		colored:       true,
		mu:            &sync.Mutex{},
		writer:        os.Stdout,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

func (l *ConsoleLogger) clone() *ConsoleLogger {
	c := *l
	c.defaultFields = make(out.LogFields, len(l.defaultFields))
	for k, v := range l.defaultFields {
		c.defaultFields[k] = v
	}
	return &c
}

func (l *ConsoleLogger) WithFields(fields out.LogFields) out.LoggerPort {
	newLogger := l.clone()
	for k, v := range fields {
		newLogger.defaultFields[k] = v
	}
	return newLogger
}

func (l *ConsoleLogger) WithModule(module string) out.LoggerPort {
	newLogger := l.clone()
	newLogger.module = module
	return newLogger
}

func (l *ConsoleLogger) Debug(event string, fields out.LogFields) {
	l.log(out.LogLevelDebug, event, fields)
}

func (l *ConsoleLogger) Info(event string, fields out.LogFields) {
	l.log(out.LogLevelInfo, event, fields)
}

func (l *ConsoleLogger) Warn(event string, fields out.LogFields) {
	l.log(out.LogLevelWarn, event, fields)
}

func (l *ConsoleLogger) Error(event string, fields out.LogFields) {
	l.log(out.LogLevelError, event, fields)
}

func (l *ConsoleLogger) log(level out.LogLevel, event string, fields out.LogFields) {
	if level.Rank() < l.minLevel.Rank() {
		return
	}

	module := l.module
	if module == "" {
		module = "unknown"
	}

	mergedFields := make(out.LogFields, len(l.defaultFields)+len(fields)+1)
	for k, v := range l.defaultFields {
		mergedFields[k] = v
	}
	for k, v := range fields {
		mergedFields[k] = v
	}
	mergedFields["event"] = event

	timestamp := time.Now().In(l.location).Format("2006-01-02 15:04:05.000")

	fieldsBytes, err := json.MarshalIndent(mergedFields, "", "  ")
	if err != nil {
		fieldsBytes = []byte(fmt.Sprintf(`{"event": %q, "marshalError": %q}`, event, err.Error()))
	}

	var logLine string
	if l.colored {
		logLine = fmt.Sprintf("%s[%s]%s %s[%s]%s %s[%s]%s\n%s",
			colorGray, timestamp, colorReset,
			levelColor(level), level, colorReset,
			colorCyan, module, colorReset,
			string(fieldsBytes),
		)
	} else {
		logLine = fmt.Sprintf("[%s] [%s] [%s]\n%s", timestamp, level, module, string(fieldsBytes))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.writer, logLine)
}

func levelColor(level out.LogLevel) string {
	switch level {
	case out.LogLevelDebug:
		return colorGray
	case out.LogLevelWarn:
		return colorYellow
	case out.LogLevelError:
		return colorRed
	}
	return colorGreen
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, out.LogFields) {}
func (NopLogger) Info(string, out.LogFields) {}
func (NopLogger) Warn(string, out.LogFields) {}
func (NopLogger) Error(string, out.LogFields) {}
func (n NopLogger) WithFields(out.LogFields) out.LoggerPort { return n }
func (n NopLogger) WithModule(string) out.LoggerPort { return n }
