package env

import (
	"fmt"
	"strings"

	"neuroflash/internal/config"
)

const (
	logLevelEnvName  = "LOG_LEVEL"
	logFormatEnvName = "LOG_FORMAT"
)

type loggerConfig struct {
	level  string
	format string
}

func NewLoggerConfig() (config.LoggerConfig, error) {
	format := strings.ToLower(stringOr(logFormatEnvName, "json"))
	if format != "json" && format != "console" {
		return nil, fmt.Errorf("%s must be json or console, got %q", logFormatEnvName, format)
	}
	return &loggerConfig{
		level:  strings.ToLower(stringOr(logLevelEnvName, "info")),
		format: format,
	}, nil
}

func (l *loggerConfig) Level() string {
	return l.level
}

func (l *loggerConfig) Format() string {
	return l.format
}
