package logging

import (
	"io"
	"os"
	"strings"

	"patchpilot/config"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the global logrus logger from config.AppConfig.Logging.
// Stdout is reserved for command results, so the fallback sink is stderr.
func InitLogger() {
	cfg := config.AppConfig.Logging

	logrus.SetLevel(parseLevel(cfg.Level))
	logrus.SetFormatter(newFormatter(cfg.Format))
	logrus.SetOutput(openOutput(cfg.Output))

	logrus.Debug("Logger initialized")
}

func parseLevel(raw string) logrus.Level {
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		logrus.Warnf("Invalid log level '%s', using 'info' instead. Error: %v", raw, err)
		return logrus.InfoLevel
	}
	return level
}

func newFormatter(format string) logrus.Formatter {
	if strings.EqualFold(format, "json") {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

func openOutput(output string) io.Writer {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	}

	file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logrus.Warnf("Failed to open log file '%s', using 'stderr' instead. Error: %v", output, err)
		return os.Stderr
	}
	return file
}
