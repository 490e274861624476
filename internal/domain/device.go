package domain

import (
	"strings"
	"time"
)

// DeviceState represents the current state of a simulator
type DeviceState string

const (
	DeviceStateShutdown     DeviceState = "Shutdown"
	DeviceStateBooted       DeviceState = "Booted"
	DeviceStateBooting      DeviceState = "Booting"
	DeviceStateCreating     DeviceState = "Creating"
	DeviceStateShuttingDown DeviceState = "Shutting Down"
)

// DeviceClass groups simulators by hardware family for batch selection
// (--type iPhone, --type iPad, ...).
type DeviceClass string

const (
	DeviceClassAny    DeviceClass = "any"
	DeviceClassIPhone DeviceClass = "iphone"
	DeviceClassIPad   DeviceClass = "ipad"
	DeviceClassWatch  DeviceClass = "watch"
	DeviceClassTV     DeviceClass = "tv"
)

// ParseDeviceClass normalizes a user-supplied device class string.
func ParseDeviceClass(s string) DeviceClass {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "all":
		return DeviceClassAny
	case "iphone":
		return DeviceClassIPhone
	case "ipad":
		return DeviceClassIPad
	case "watch", "applewatch", "apple-watch":
		return DeviceClassWatch
	case "tv", "appletv", "apple-tv":
		return DeviceClassTV
	default:
		return DeviceClass(strings.ToLower(s))
	}
}

// Device represents an iOS Simulator device
type Device struct {
	UDID                 string      `json:"udid"`
	Name                 string      `json:"name"`
	State                DeviceState `json:"state"`
	IsAvailable          bool        `json:"isAvailable"`
	DeviceTypeIdentifier string      `json:"deviceTypeIdentifier"`
	RuntimeIdentifier    string      `json:"runtime"`
	DataPath             string      `json:"dataPath,omitempty"`
	LogPath              string      `json:"logPath,omitempty"`
	LastBootedAt         *time.Time  `json:"lastBootedAt,omitempty"`
}

// IsBooted returns true if the device is currently booted
func (d *Device) IsBooted() bool {
	return d.State == DeviceStateBooted
}

// Class derives the device family from the device type identifier,
// e.g. "com.apple.CoreSimulator.SimDeviceType.iPhone-16-Pro" -> iphone.
func (d *Device) Class() DeviceClass {
	id := strings.ToLower(d.DeviceTypeIdentifier)
	switch {
	case strings.Contains(id, "iphone"):
		return DeviceClassIPhone
	case strings.Contains(id, "ipad"):
		return DeviceClassIPad
	case strings.Contains(id, "watch"):
		return DeviceClassWatch
	case strings.Contains(id, "apple-tv"), strings.Contains(id, "appletv"):
		return DeviceClassTV
	default:
		return DeviceClassAny
	}
}

// SimctlDevicesResponse matches `xcrun simctl list devices --json` output
type SimctlDevicesResponse struct {
	Devices map[string][]SimctlDevice `json:"devices"`
}

// SimctlDevice represents a device from simctl JSON output
type SimctlDevice struct {
	UDID                 string  `json:"udid"`
	Name                 string  `json:"name"`
	State                string  `json:"state"`
	IsAvailable          bool    `json:"isAvailable"`
	DeviceTypeIdentifier string  `json:"deviceTypeIdentifier"`
	DataPath             string  `json:"dataPath"`
	LogPath              string  `json:"logPath"`
	LastBootedAt         *string `json:"lastBootedAt,omitempty"`
}

// SimctlRuntimesResponse matches `xcrun simctl list runtimes --json` output
type SimctlRuntimesResponse struct {
	Runtimes []SimctlRuntime `json:"runtimes"`
}

// SimctlRuntime represents a runtime from simctl JSON output
type SimctlRuntime struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	IsAvailable bool   `json:"isAvailable"`
}

// SimctlDeviceTypesResponse matches `xcrun simctl list devicetypes --json`
type SimctlDeviceTypesResponse struct {
	DeviceTypes []SimctlDeviceType `json:"devicetypes"`
}

// SimctlDeviceType represents a device type from simctl JSON output
type SimctlDeviceType struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}
