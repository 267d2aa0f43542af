// Package logging routes the process-wide charmbracelet/log logger.
//
// The interactive view owns the terminal, so nothing is ever written to
// stdout or stderr: with debug off logs are discarded, with debug on they go
// to <dir>/logs/trajsim.log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	LogDirName  = "logs"
	LogFileName = "trajsim.log"
	MaxLogSize  = 10 * 1024 * 1024
)

var now = time.Now

// Setup installs the default logger. The returned file is nil when debug is
// off; callers close it on exit.
func Setup(debug bool, dir string) (*os.File, error) {
	if !debug {
		log.SetDefault(log.New(io.Discard))
		return nil, nil
	}

	logDir := filepath.Join(dir, LogDirName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetDefault(log.New(io.Discard))
		return nil, fmt.Errorf("logging: %w", err)
	}

	logPath := filepath.Join(logDir, LogFileName)
	var rotateErr error
	if info, err := os.Stat(logPath); err == nil && info.Size() > MaxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("trajsim_%s.log", now().Format("20060102_150405")))
		// on failure keep appending to the oversized file
		rotateErr = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetDefault(log.New(io.Discard))
		return nil, fmt.Errorf("logging: %w", err)
	}

	log.SetDefault(log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           log.DebugLevel,
		Prefix:          "trajsim",
	}))
	log.Debug("logging started", "path", logPath)
	if rotateErr != nil {
		log.Warn("log rotation skipped", "err", rotateErr)
	}
	return f, nil
}
