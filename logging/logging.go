// Package logging builds the logrus logger shared by the front ends and the session.
package logging

import (
	"io"
	"os"
	"strings"

	"snake-sim/config"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// New returns a logger writing to out (stderr when nil) at the configured level and format
func New(cfg config.LogConfig, out io.Writer) (*log.Logger, error) {
	logger := log.New()
	if out == nil {
		out = os.Stderr
	}
	logger.SetOutput(out)

	level := log.InfoLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, errors.Wrap(err, "log level")
		}
		level = parsed
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	return logger, nil
}

// Discard is a logger that drops everything, used when no logger is configured
func Discard() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}
