package configs

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the process wide logger. InitLogger must run before anything logs.
var Logger = logrus.New()

func InitLogger(level, format string) {
	Logger.SetOutput(os.Stdout)

	if strings.EqualFold(format, "json") {
		Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
		Logger.WithField("level", level).Warn("unknown log level, falling back to info")
	}
	Logger.SetLevel(parsed)
}

// LogWithContext tags entries with the component and the operation being performed.
func LogWithContext(service, operation string) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"service":   service,
		"operation": operation,
	})
}
