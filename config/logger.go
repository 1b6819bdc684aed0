package config

import (
	"github.com/MonkyMars/gecho"
)

var logger *gecho.Logger

// InitializeLogger builds the process-wide logger. The level follows the
// environment: info in production, debug everywhere else.
func InitializeLogger() *gecho.Logger {
	logger = gecho.NewLogger(gecho.NewConfig(
		gecho.WithShowCaller(true),
		gecho.WithLogLevel(gecho.ParseLogLevel(GetLogLevel())),
	))
	return logger
}

// GetLogger returns the logger built by InitializeLogger.
func GetLogger() *gecho.Logger {
	return logger
}
