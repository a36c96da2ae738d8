package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the application-wide structured logger.
type Logger struct {
	*logrus.Logger
}

// InitLogger builds a logrus logger writing to stdout. LOG_LEVEL controls
// verbosity (debug, info, warn, error); anything unparseable means info.
func InitLogger() *Logger {
	logger := logrus.New()

	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return &Logger{logger}
}
