package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the process logger. Production gets JSON lines for log
// shipping; development gets the readable text format.
func New(production bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if production {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
