// Package logging routes harness events to stderr and an optional log file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init points the standard logger at stderr and, when logPath is set, at logPath too.
// Stdout is left to the report.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stderr)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file, if any, and restores stderr output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogRunEvent logs a phase of a benchmark mode. Never call it inside a timed interval.
func LogRunEvent(mode, phase string, detail any) {
	log.Println(buildRunMessage(mode, phase, detail))
}

func buildRunMessage(mode, phase string, detail any) string {
	modeValue := strings.TrimSpace(mode)
	if modeValue == "" {
		modeValue = "unknown"
	}
	phaseValue := strings.ToUpper(strings.TrimSpace(phase))
	if phaseValue == "" {
		phaseValue = "RUN"
	}
	parts := []string{fmt.Sprintf("[%s]", phaseValue)}
	parts = append(parts, fmt.Sprintf("mode=%s", modeValue))
	if detail != nil {
		parts = append(parts, fmt.Sprintf("detail=%s", formatDetail(detail)))
	}
	return strings.Join(parts, " ")
}

func formatDetail(detail any) string {
	switch v := detail.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
