package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var logger = log.New()

func init() {
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

// ConfigureLogger sets the level (debug, info, warn, error) and format
// (text, json) of the package logger. Unknown values keep the defaults.
func ConfigureLogger(level, format string, out io.Writer) {
	if out != nil {
		logger.SetOutput(out)
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else if level != "" {
		LogWarning("could not parse log level %q", level)
	}
	switch strings.ToLower(format) {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		LogWarning("could not parse log format %q", format)
	}
}

// WithFields returns an entry for structured request logs.
func WithFields(fields log.Fields) *log.Entry {
	return logger.WithFields(fields)
}

func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

func LogDebug(format string, v ...interface{}) {
	logger.WithField("file", caller()).Debugf(format, v...)
}

func LogInfo(format string, v ...interface{}) {
	logger.Infof(format, v...)
}

func LogError(format string, v ...interface{}) {
	logger.WithField("file", caller()).Errorf(format, v...)
}

func LogWarning(format string, v ...interface{}) {
	logger.WithField("file", caller()).Warnf(format, v...)
}

func TimeTrack(start time.Time, name string) {
	LogDebug("%s took %s", name, time.Since(start))
}
