package logger

import (
	"io"
	"runtime"

	"github.com/rs/zerolog"
)

type ZeroLogger struct {
	writer io.Writer
	level  Level
	fields Fields
	zl     zerolog.Logger
}

var _ Logger = (*ZeroLogger)(nil)

type CallerHook struct{}

func (h CallerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	if _, file, line, ok := runtime.Caller(4); ok {
		e.Str("file", file)
		e.Int("line", line)
	}
}

// NewZeroLogger returns a JSON logger writing to writer. defaultFields are
// attached to every entry.
func NewZeroLogger(writer io.Writer, level Level, defaultFields Fields) *ZeroLogger {
	if defaultFields == nil {
		defaultFields = Fields{}
	}
	l := &ZeroLogger{writer: writer, level: level, fields: defaultFields}
	l.configure()
	return l
}

func (l *ZeroLogger) configure() {
	l.zl = zerolog.New(l.writer).
		With().
		Fields(map[string]interface{}(l.fields)).
		Timestamp().
		Logger().
		Level(toZerologLevel(l.level)).
		Hook(CallerHook{})
}

func toZerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	case LevelOff:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func (l *ZeroLogger) Info(message string, properties map[string]interface{}) {
	l.zl.Info().Fields(properties).Msg(message)
}

func (l *ZeroLogger) Error(err error, properties map[string]interface{}) {
	l.zl.Error().Fields(properties).Err(err).Msg(err.Error())
}

// Fatal writes the entry and exits the process.
func (l *ZeroLogger) Fatal(err error, properties map[string]interface{}) {
	l.zl.Fatal().Fields(properties).Err(err).Msg(err.Error())
}

func (l *ZeroLogger) Debug(message string, properties map[string]interface{}) {
	l.zl.Debug().Fields(properties).Msg(message)
}

func (l *ZeroLogger) SetLevel(level Level) {
	l.level = level
	l.configure()
}

func (l *ZeroLogger) With(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return NewZeroLogger(l.writer, l.level, merged)
}
