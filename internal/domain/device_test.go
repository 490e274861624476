package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDeviceClass(t *testing.T) {
	tests := []struct {
		input    string
		expected DeviceClass
	}{
		{"", DeviceClassAny},
		{"any", DeviceClassAny},
		{"all", DeviceClassAny},
		{"iPhone", DeviceClassIPhone},
		{"IPAD", DeviceClassIPad},
		{"watch", DeviceClassWatch},
		{"applewatch", DeviceClassWatch},
		{"apple-tv", DeviceClassTV},
		{"tv", DeviceClassTV},
		{"  iphone  ", DeviceClassIPhone},
		{"vision", DeviceClass("vision")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseDeviceClass(tt.input))
		})
	}
}

func TestDevice_Class(t *testing.T) {
	tests := []struct {
		name     string
		typeID   string
		expected DeviceClass
	}{
		{"iPhone", "com.apple.CoreSimulator.SimDeviceType.iPhone-16-Pro", DeviceClassIPhone},
		{"iPad", "com.apple.CoreSimulator.SimDeviceType.iPad-Pro-11-inch", DeviceClassIPad},
		{"watch", "com.apple.CoreSimulator.SimDeviceType.Apple-Watch-Series-10", DeviceClassWatch},
		{"tv", "com.apple.CoreSimulator.SimDeviceType.Apple-TV-4K", DeviceClassTV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Device{DeviceTypeIdentifier: tt.typeID}
			assert.Equal(t, tt.expected, d.Class())
		})
	}
}

func TestDevice_IsBooted(t *testing.T) {
	assert.True(t, (&Device{State: DeviceStateBooted}).IsBooted())
	assert.False(t, (&Device{State: DeviceStateShutdown}).IsBooted())
	assert.False(t, (&Device{State: DeviceStateBooting}).IsBooted())
}
