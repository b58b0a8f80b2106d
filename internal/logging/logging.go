// Package logging sets up the file-backed logger. The TUI owns the
// terminal, so log output goes to a file under the data directory.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Open creates a logger writing to logPath, creating parent directories as
// needed. The returned closer flushes the file on shutdown.
func Open(logPath string) (*log.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
	})
	return logger, file.Close, nil
}
