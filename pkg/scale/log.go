package scale

// Logger denotes a generic log interface that logging service must provide
type Logger interface {
	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	Warn(args ...interface{})
	Warnf(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
}

// NullLogger denotes a null-op logger that ignores all messages
type NullLogger struct{}

func (l *NullLogger) Error(args ...interface{}) {}

func (l *NullLogger) Errorf(format string, args ...interface{}) {}

func (l *NullLogger) Warn(args ...interface{}) {}

func (l *NullLogger) Warnf(format string, args ...interface{}) {}

func (l *NullLogger) Info(args ...interface{}) {}

func (l *NullLogger) Infof(format string, args ...interface{}) {}

func (l *NullLogger) Debug(args ...interface{}) {}

func (l *NullLogger) Debugf(format string, args ...interface{}) {}

// Prefixed returns a logger that prepends a fixed prefix to all formatted messages
func Prefixed(l Logger, prefix string) Logger {
	if l == nil {
		return &NullLogger{}
	}
	return &prefixLogger{Logger: l, prefix: prefix + ": "}
}

type prefixLogger struct {
	Logger
	prefix string
}

func (l *prefixLogger) Errorf(format string, args ...interface{}) {
	l.Logger.Errorf(l.prefix+format, args...)
}

func (l *prefixLogger) Warnf(format string, args ...interface{}) {
	l.Logger.Warnf(l.prefix+format, args...)
}

func (l *prefixLogger) Infof(format string, args ...interface{}) {
	l.Logger.Infof(l.prefix+format, args...)
}

func (l *prefixLogger) Debugf(format string, args ...interface{}) {
	l.Logger.Debugf(l.prefix+format, args...)
}
