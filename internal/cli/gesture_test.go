package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwipePoints(t *testing.T) {
	const w, h = 400.0, 800.0

	tests := []struct {
		name           string
		direction      string
		invert         bool
		x1, y1, x2, y2 float64
	}{
		{"swipe up", "up", false, 200, 640, 200, 160},
		{"swipe down", "down", false, 200, 160, 200, 640},
		{"swipe left", "left", false, 320, 400, 80, 400},
		{"swipe right", "right", false, 80, 400, 320, 400},
		{"scroll down swipes up", "down", true, 200, 640, 200, 160},
		{"scroll up swipes down", "up", true, 200, 160, 200, 640},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x1, y1, x2, y2, err := swipePoints(tt.direction, tt.invert, w, h)
			require.NoError(t, err)
			assert.Equal(t, tt.x1, x1)
			assert.Equal(t, tt.y1, y1)
			assert.Equal(t, tt.x2, x2)
			assert.Equal(t, tt.y2, y2)
		})
	}
}

func TestSwipePoints_UnknownDirection(t *testing.T) {
	_, _, _, _, err := swipePoints("diagonal", false, 400, 800)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown direction")
}
