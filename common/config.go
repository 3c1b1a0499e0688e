package common

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_UDP_PORT = 41234

	// Maximum payload of a single UDP datagram over IPv4
	MAX_DATAGRAM_SIZE = 65507

	DEFAULT_SIMULATOR_HOST = "127.0.0.1"
)

// Configures the standard logger. The level is taken from the argument if
// set, otherwise from the LOG_LEVEL environment variable.
func Setup(level string) {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}

	if os.Getenv("environment") == "" {
		os.Setenv("environment", "development")
	}

	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	// Messages carry raw datagram payloads
	customFormatter.DisableQuote = true
	logrus.SetFormatter(customFormatter)

	logrus.SetReportCaller(false)
	logrus.SetLevel(ParseLevel(level))
	logrus.SetOutput(os.Stdout)

	logrus.Debug("Environment: ", os.Getenv("environment"))
}

// Unknown or empty levels fall back to info
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
