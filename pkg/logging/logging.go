package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

var logFile *os.File

// ToFile redirects the default logger to the given file, creating
// ~/.mem0-mcp/mem0-mcp.log when no path is configured. The stdio transport
// owns stdout, so server logs must never land there.
func ToFile(path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dir := filepath.Join(home, ".mem0-mcp")
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		path = filepath.Join(dir, "mem0-mcp.log")
	}

	fh, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	logFile = fh
	log.SetOutput(fh)
	log.SetReportTimestamp(true)
	log.Info("logging initialized", "file", path)
	return nil
}

// SetLevel adjusts the default logger's level from its config string.
func SetLevel(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warn("unknown log level, keeping default", "level", level)
		return
	}
	log.SetLevel(parsed)
}

// Close closes the log file if one was opened.
func Close() {
	if logFile != nil {
		log.Info("closing log file")
		logFile.Close()
	}
}
