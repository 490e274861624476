package simulator

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
)

// LogParser parses NDJSON lines from the unified logging tool into
// structured entries.
type LogParser struct{}

// NewLogParser creates a new log parser
func NewLogParser() *LogParser {
	return &LogParser{}
}

// Parse converts a raw NDJSON line to a LogEntry. Non-log events (signposts,
// state changes) return nil with no error.
func (p *LogParser) Parse(line []byte) (*domain.LogEntry, error) {
	var raw domain.RawLogEntry
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, err
	}

	if raw.EventType != "logEvent" && raw.EventType != "" {
		return nil, nil
	}

	ts, err := parseLogTimestamp(raw.Timestamp)
	if err != nil {
		ts = time.Now()
	}

	return &domain.LogEntry{
		Timestamp:   ts,
		Level:       domain.ParseLogLevel(raw.MessageType),
		Process:     filepath.Base(raw.ProcessImagePath),
		PID:         raw.ProcessID,
		TID:         raw.ThreadID,
		Subsystem:   raw.Subsystem,
		Category:    raw.Category,
		Message:     raw.EventMessage,
		ProcessPath: raw.ProcessImagePath,
		SenderPath:  raw.SenderImagePath,
		EventType:   raw.EventType,
	}, nil
}

// parseLogTimestamp handles the Apple log timestamp format,
// e.g. "2025-12-08 22:11:55.808033+0100".
func parseLogTimestamp(s string) (time.Time, error) {
	layouts := []string{
		"2006-01-02 15:04:05.000000-0700",
		"2006-01-02 15:04:05-0700",
		time.RFC3339Nano,
		time.RFC3339,
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
