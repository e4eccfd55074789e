package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	logger = logrus.New()
)

type Config struct {
	// Output is a file path for log records, stderr when empty.
	Output string
	Debug  bool
}

func init() {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
}

// InitEngine applies cfg to the package logger.
func InitEngine(cfg *Config) {
	if cfg == nil {
		return
	}

	var out io.Writer = os.Stderr
	if cfg.Output != "" {
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			logger.Warnf("failed to open log output %s, fallback to stderr, err: %s", cfg.Output, err)
		} else {
			out = f
		}
	}

	logger.SetOutput(out)
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

func SetDebug() {
	logger.SetLevel(logrus.DebugLevel)
}

func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func GetLevel() logrus.Level {
	return logger.GetLevel()
}

func WithField(key string, value interface{}) *logrus.Entry {
	return logger.WithField(key, value)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func WithError(err error) *logrus.Entry {
	return logger.WithError(err)
}

func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
