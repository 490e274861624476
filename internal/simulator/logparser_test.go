package simulator

import (
	"testing"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogParser_Parse(t *testing.T) {
	parser := NewLogParser()

	t.Run("parses a log event", func(t *testing.T) {
		line := `{"timestamp":"2025-12-08 22:11:55.808033+0100","messageType":"Error","eventType":"logEvent","eventMessage":"Connection refused","processID":1234,"processImagePath":"/path/to/MyApp","subsystem":"com.example.myapp","category":"network","threadID":7}`

		entry, err := parser.Parse([]byte(line))
		require.NoError(t, err)
		require.NotNil(t, entry)

		assert.Equal(t, domain.LogLevelError, entry.Level)
		assert.Equal(t, "MyApp", entry.Process)
		assert.Equal(t, 1234, entry.PID)
		assert.Equal(t, 7, entry.TID)
		assert.Equal(t, "com.example.myapp", entry.Subsystem)
		assert.Equal(t, "network", entry.Category)
		assert.Equal(t, "Connection refused", entry.Message)
		assert.Equal(t, 2025, entry.Timestamp.Year())
	})

	t.Run("skips non-log events", func(t *testing.T) {
		line := `{"timestamp":"2025-12-08 22:11:55.808033+0100","eventType":"stateEvent","eventMessage":"state changed"}`

		entry, err := parser.Parse([]byte(line))
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("invalid JSON is an error", func(t *testing.T) {
		_, err := parser.Parse([]byte("Filtering the log data"))
		assert.Error(t, err)
	})

	t.Run("bad timestamp falls back to now", func(t *testing.T) {
		line := `{"timestamp":"not-a-time","messageType":"Info","eventType":"logEvent","eventMessage":"hi"}`
		entry, err := parser.Parse([]byte(line))
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.False(t, entry.Timestamp.IsZero())
	})
}

func TestParseLogTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"apple format", "2025-12-08 22:11:55.808033+0100", true},
		{"apple format no fraction", "2025-12-08 22:11:55+0100", true},
		{"rfc3339", "2025-12-08T22:11:55Z", true},
		{"garbage", "yesterday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := parseLogTimestamp(tt.input)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, 2025, ts.Year())
			} else {
				assert.Error(t, err)
			}
		})
	}
}
