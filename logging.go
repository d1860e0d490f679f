package main

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// logger never writes to the terminal while the UI owns it; by default
// output is discarded until configureLogging points it at a file.
var logger = log.New(io.Discard)

func parseLogLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// configureLogging sets the level and destination of the package logger.
// The returned closer releases the log file, if one was opened.
func configureLogging(level, logFile string) (io.Closer, error) {
	var output io.Writer = io.Discard
	var closer io.Closer = io.NopCloser(nil)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, err
		}
		output = file
		closer = file
	}

	logger = log.NewWithOptions(output, log.Options{
		ReportTimestamp: true,
		Prefix:          appName,
		Level:           parseLogLevel(level),
	})
	return closer, nil
}
