package simulator

import (
	"regexp"
	"testing"
	"time"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildPredicate(t *testing.T) {
	tests := []struct {
		name       string
		bundleID   string
		subsystems []string
		expected   string
	}{
		{
			name:     "empty",
			expected: "",
		},
		{
			name:     "bundle only",
			bundleID: "com.example.app",
			expected: `subsystem BEGINSWITH "com.example.app"`,
		},
		{
			name:       "subsystem only",
			subsystems: []string{"com.apple.network"},
			expected:   `subsystem == "com.apple.network"`,
		},
		{
			name:       "bundle and subsystems are OR-joined",
			bundleID:   "com.example.app",
			subsystems: []string{"com.apple.network", "com.apple.UIKit"},
			expected:   `(subsystem BEGINSWITH "com.example.app" OR subsystem == "com.apple.network" OR subsystem == "com.apple.UIKit")`,
		},
		{
			name:       "blank subsystems skipped",
			subsystems: []string{"", "  "},
			expected:   "",
		},
		{
			name:     "quotes escaped in literals",
			bundleID: `com."evil"`,
			expected: `subsystem BEGINSWITH "com.\"evil\""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildPredicate(tt.bundleID, tt.subsystems))
		})
	}
}

func TestPredicateQuoteLiteral(t *testing.T) {
	assert.Equal(t, `"plain"`, predicateQuoteLiteral("plain"))
	assert.Equal(t, `"a\"b"`, predicateQuoteLiteral(`a"b`))
	assert.Equal(t, `"a\\b"`, predicateQuoteLiteral(`a\b`))
	assert.Equal(t, `"a\nb"`, predicateQuoteLiteral("a\nb"))
}

func TestFormatLogDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{2 * time.Hour, "2h"},
		{5 * time.Minute, "5m"},
		{90 * time.Second, "90s"},
		{time.Minute + 30*time.Second, "90s"},
		{45 * time.Second, "45s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatLogDuration(tt.d), "duration %s", tt.d)
	}
}

func TestLogOptions_Matches(t *testing.T) {
	entry := func(level domain.LogLevel, process, message string) *domain.LogEntry {
		return &domain.LogEntry{Level: level, Process: process, Message: message}
	}

	t.Run("level floor", func(t *testing.T) {
		opts := LogOptions{MinLevel: domain.LogLevelError}
		assert.False(t, opts.matches(entry(domain.LogLevelInfo, "App", "hello")))
		assert.True(t, opts.matches(entry(domain.LogLevelError, "App", "boom")))
		assert.True(t, opts.matches(entry(domain.LogLevelFault, "App", "worse")))
	})

	t.Run("pattern include", func(t *testing.T) {
		opts := LogOptions{
			MinLevel: domain.LogLevelDebug,
			Pattern:  regexp.MustCompile(`timeout`),
		}
		assert.True(t, opts.matches(entry(domain.LogLevelInfo, "App", "request timeout")))
		assert.False(t, opts.matches(entry(domain.LogLevelInfo, "App", "request ok")))
	})

	t.Run("exclude patterns", func(t *testing.T) {
		opts := LogOptions{
			MinLevel:        domain.LogLevelDebug,
			ExcludePatterns: []*regexp.Regexp{regexp.MustCompile(`heartbeat`)},
		}
		assert.False(t, opts.matches(entry(domain.LogLevelInfo, "App", "heartbeat tick")))
		assert.True(t, opts.matches(entry(domain.LogLevelInfo, "App", "real work")))
	})

	t.Run("process filter is case-insensitive", func(t *testing.T) {
		opts := LogOptions{
			MinLevel:  domain.LogLevelDebug,
			Processes: []string{"MyApp"},
		}
		assert.True(t, opts.matches(entry(domain.LogLevelInfo, "myapp", "hi")))
		assert.False(t, opts.matches(entry(domain.LogLevelInfo, "OtherApp", "hi")))
	})
}
