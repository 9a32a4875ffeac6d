package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func GetLogger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}

// SetupLogger adjusts the global logger once the config has been loaded.
func SetupLogger(cfg *Config) {
	if cfg.App.Debug {
		logg.SetLevel(logrus.DebugLevel)
	}
	if cfg.App.Env == "development" {
		logg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// LogError records a structured error entry with the module and function
// that produced it.
func LogError(logger *logrus.Logger, moduleName, funcName, context string, data any, err error) {
	fields := logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	logger.WithFields(fields).Error(err.Error())
}
