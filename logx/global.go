package logx

import (
	"io"
	"os"
	"strings"
)

var defaultLogger *Logger

func init() {
	defaultLogger = New()
	Configure(os.Getenv)
}

// Configure applies LOG_LEVEL, LOG_FORMAT, LOG_COLOR and LOG_CALLER to the
// default logger. Unset or invalid values leave the current setting alone.
func Configure(getenv func(string) string) {
	if lvl := getenv("LOG_LEVEL"); lvl != "" {
		if level, err := ParseLevel(lvl); err == nil {
			defaultLogger.SetLevel(level)
		}
	}

	if format := getenv("LOG_FORMAT"); format != "" {
		if strings.ToLower(format) == "json" {
			defaultLogger.SetFormat(FormatJSON)
		} else {
			defaultLogger.SetFormat(FormatConsole)
		}
	}

	if colorEnv := getenv("LOG_COLOR"); colorEnv != "" {
		defaultLogger.SetColored(strings.ToLower(colorEnv) != "false")
	}

	if callerEnv := getenv("LOG_CALLER"); callerEnv != "" {
		defaultLogger.SetShowCaller(strings.ToLower(callerEnv) != "false")
	}
}

// SetLevel sets the global log level
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetOutput sets the global output destination
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// SetFormat sets the global log format
func SetFormat(format OutputFormat) {
	defaultLogger.SetFormat(format)
}

// GetLogger returns the default logger instance
func GetLogger() *Logger {
	return defaultLogger
}

func Trace(msg string, args ...any) {
	defaultLogger.Trace(msg, args...)
}

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

func Fatal(msg string, args ...any) {
	defaultLogger.Fatal(msg, args...)
}
