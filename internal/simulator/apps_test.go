package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLaunchPID(t *testing.T) {
	t.Run("standard output", func(t *testing.T) {
		pid, err := parseLaunchPID("com.example.app", []byte("com.example.app: 12345\n"))
		require.NoError(t, err)
		assert.Equal(t, 12345, pid)
	})

	t.Run("unexpected output is surfaced, not swallowed", func(t *testing.T) {
		pid, err := parseLaunchPID("com.example.app", []byte("something went sideways"))
		require.Error(t, err)
		assert.Zero(t, pid)
		assert.Contains(t, err.Error(), "something went sideways")
	})

	t.Run("empty output", func(t *testing.T) {
		_, err := parseLaunchPID("com.example.app", nil)
		require.Error(t, err)
	})
}
