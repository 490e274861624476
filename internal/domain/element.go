package domain

import "fmt"

// ElementType is the accessibility element class reported by the UI layer
// (Button, TextField, SecureTextField, StaticText, Cell, ...).
type ElementType string

// Frame is an element's on-screen rectangle in points.
type Frame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the midpoint of the frame, the tap target for the element.
func (f Frame) Center() (x, y float64) {
	return f.X + f.Width/2, f.Y + f.Height/2
}

// Element is a single node of the accessibility tree of the current screen.
type Element struct {
	Type       ElementType `json:"type"`
	Label      string      `json:"label,omitempty"`
	Value      string      `json:"value,omitempty"`
	Identifier string      `json:"identifier,omitempty"`
	Frame      Frame       `json:"frame"`
	Enabled    bool        `json:"enabled"`
	Visible    bool        `json:"visible"`
}

// String renders a short human-readable description for concise output.
func (e Element) String() string {
	label := e.Label
	if label == "" {
		label = e.Value
	}
	if label == "" {
		label = e.Identifier
	}
	if label == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s %q", e.Type, label)
}

// Screen is the mapped accessibility state of the frontmost app.
type Screen struct {
	UDID     string    `json:"udid"`
	Elements []Element `json:"elements"`
}
