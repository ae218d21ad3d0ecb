package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// SetDebug toggles debug-level output.
func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// Fields is a set of structured logging fields.
type Fields = logrus.Fields

// F builds a single-entry field set.
func F(key string, value interface{}) Fields {
	return Fields{key: value}
}

// LogWithFields returns a log entry carrying the supplied fields.
func LogWithFields(fields Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func Debug(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Error logs a formatted error message.
func Error(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Warn logs a formatted warning message.
func Warn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}
