package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// maxLogFiles is how many timestamped log files to keep around.
const maxLogFiles = 10

// SetupLogFile creates a timestamped log file under dir and prunes old ones.
// The caller owns the returned handle.
func SetupLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	name := filepath.Join(dir, fmt.Sprintf("server-%s.log",
		time.Now().Format("2006-01-02T15-04-05")))

	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	if err := pruneOldLogs(dir); err != nil {
		// Pruning failure is not fatal, logging still works
		fmt.Fprintf(os.Stderr, "warning: failed to prune old logs: %v\n", err)
	}

	return f, nil
}

// pruneOldLogs removes the oldest log files once the count exceeds maxLogFiles.
func pruneOldLogs(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "server-*.log"))
	if err != nil {
		return err
	}
	if len(files) <= maxLogFiles {
		return nil
	}

	// The timestamp format sorts chronologically
	sort.Strings(files)

	for _, old := range files[:len(files)-maxLogFiles] {
		if err := os.Remove(old); err != nil {
			return fmt.Errorf("remove %s: %w", old, err)
		}
	}
	return nil
}
