package tmux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"iPhone 16 Pro", "iossim-iphone-16-pro"},
		{"iPad Air (5th generation)", "iossim-ipad-air-5th-generation"},
		{"My  Device!!", "iossim-my-device"},
		{"simple", "iossim-simple"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SessionName(tt.input), "input %q", tt.input)
	}
}
