package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrame_Center(t *testing.T) {
	f := Frame{X: 10, Y: 20, Width: 100, Height: 40}
	x, y := f.Center()
	assert.Equal(t, 60.0, x)
	assert.Equal(t, 40.0, y)
}

func TestElement_String(t *testing.T) {
	tests := []struct {
		name     string
		element  Element
		expected string
	}{
		{"labeled", Element{Type: "Button", Label: "Sign In"}, `Button "Sign In"`},
		{"value fallback", Element{Type: "TextField", Value: "user@example.com"}, `TextField "user@example.com"`},
		{"identifier fallback", Element{Type: "Button", Identifier: "submit_btn"}, `Button "submit_btn"`},
		{"bare type", Element{Type: "Image"}, "Image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.element.String())
		})
	}
}
