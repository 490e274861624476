package cli

import (
	"testing"

	"github.com/skyler14/ios-simulator-skill/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestDeviceFlagsWithDefaults(t *testing.T) {
	tests := []struct {
		name     string
		flags    deviceFlags
		defaults config.DefaultsConfig
		want     deviceFlags
	}{
		{
			name:     "booted default keeps auto-detect",
			flags:    deviceFlags{},
			defaults: config.DefaultsConfig{Simulator: "booted", DeviceClass: "any"},
			want:     deviceFlags{},
		},
		{
			name:     "configured simulator fills empty udid",
			flags:    deviceFlags{},
			defaults: config.DefaultsConfig{Simulator: "iPhone 16 Pro"},
			want:     deviceFlags{Udid: "iPhone 16 Pro"},
		},
		{
			name:     "explicit udid wins over configured simulator",
			flags:    deviceFlags{Udid: "iPad Air"},
			defaults: config.DefaultsConfig{Simulator: "iPhone 16 Pro"},
			want:     deviceFlags{Udid: "iPad Air"},
		},
		{
			name:     "all is not narrowed to the configured simulator",
			flags:    deviceFlags{All: true},
			defaults: config.DefaultsConfig{Simulator: "iPhone 16 Pro"},
			want:     deviceFlags{All: true},
		},
		{
			name:     "type filter is not narrowed to the configured simulator",
			flags:    deviceFlags{Type: "iphone"},
			defaults: config.DefaultsConfig{Simulator: "iPhone 16 Pro"},
			want:     deviceFlags{Type: "iphone"},
		},
		{
			name:     "configured device class narrows all",
			flags:    deviceFlags{All: true},
			defaults: config.DefaultsConfig{Simulator: "booted", DeviceClass: "iphone"},
			want:     deviceFlags{All: true, Type: "iphone"},
		},
		{
			name:     "explicit type wins over configured device class",
			flags:    deviceFlags{All: true, Type: "ipad"},
			defaults: config.DefaultsConfig{DeviceClass: "iphone"},
			want:     deviceFlags{All: true, Type: "ipad"},
		},
		{
			name:     "any device class is a no-op",
			flags:    deviceFlags{All: true},
			defaults: config.DefaultsConfig{DeviceClass: "any"},
			want:     deviceFlags{All: true},
		},
		{
			name:     "empty defaults leave flags alone",
			flags:    deviceFlags{},
			defaults: config.DefaultsConfig{},
			want:     deviceFlags{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.flags.withDefaults(tt.defaults))
		})
	}
}
