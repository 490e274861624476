package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"go.uber.org/zap"
)

// Manager handles simulator discovery and lifecycle operations
type Manager struct {
	xcrunPath    string
	pollInterval time.Duration
	clock        clock.Clock
	log          *zap.Logger
}

// NewManager creates a new simulator manager
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		xcrunPath:    "xcrun",
		pollInterval: 2 * time.Second,
		clock:        clock.New(),
		log:          log,
	}
}

// simctl runs an xcrun simctl subcommand and returns its stdout
func (m *Manager) simctl(ctx context.Context, args ...string) ([]byte, error) {
	full := append([]string{"simctl"}, args...)
	m.log.Debug("running simctl", zap.Strings("args", full))
	cmd := exec.CommandContext(ctx, m.xcrunPath, full...)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("simctl %s failed: %s", args[0], strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("simctl %s failed: %w", args[0], err)
	}
	return out, nil
}

// ListDevices returns all available simulators
func (m *Manager) ListDevices(ctx context.Context) ([]domain.Device, error) {
	output, err := m.simctl(ctx, "list", "devices", "--json")
	if err != nil {
		return nil, err
	}

	var resp domain.SimctlDevicesResponse
	if err := json.Unmarshal(output, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse simctl output: %w", err)
	}

	var devices []domain.Device
	for runtime, devs := range resp.Devices {
		for _, d := range devs {
			if !d.IsAvailable {
				continue
			}

			var lastBooted *time.Time
			if d.LastBootedAt != nil {
				if t, err := time.Parse(time.RFC3339, *d.LastBootedAt); err == nil {
					lastBooted = &t
				}
			}

			devices = append(devices, domain.Device{
				UDID:                 d.UDID,
				Name:                 d.Name,
				State:                domain.DeviceState(d.State),
				IsAvailable:          d.IsAvailable,
				DeviceTypeIdentifier: d.DeviceTypeIdentifier,
				RuntimeIdentifier:    parseRuntimeName(runtime),
				DataPath:             d.DataPath,
				LogPath:              d.LogPath,
				LastBootedAt:         lastBooted,
			})
		}
	}

	return devices, nil
}

// ListBootedDevices returns only booted simulators
func (m *Manager) ListBootedDevices(ctx context.Context) ([]domain.Device, error) {
	devices, err := m.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	var booted []domain.Device
	for _, d := range devices {
		if d.IsBooted() {
			booted = append(booted, d)
		}
	}
	return booted, nil
}

// FindDevice finds a device by name or UDID.
// Match order: "booted" sentinel, UDID exact, name exact, name substring.
func (m *Manager) FindDevice(ctx context.Context, nameOrUDID string) (*domain.Device, error) {
	if strings.EqualFold(strings.TrimSpace(nameOrUDID), "booted") {
		return m.FindBootedDevice(ctx)
	}

	devices, err := m.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	return matchDevice(devices, nameOrUDID)
}

// matchDevice applies the resolution order against a device list
func matchDevice(devices []domain.Device, nameOrUDID string) (*domain.Device, error) {
	needle := strings.ToLower(nameOrUDID)

	// Exact match by UDID (case-insensitive)
	for _, d := range devices {
		if strings.ToLower(d.UDID) == needle {
			return &d, nil
		}
	}

	// Exact match by name (case-insensitive)
	for _, d := range devices {
		if strings.ToLower(d.Name) == needle {
			return &d, nil
		}
	}

	// Fuzzy match by name (contains)
	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.Name), needle) {
			return &d, nil
		}
	}

	return nil, &NotFoundError{Identifier: nameOrUDID}
}

// FindBootedDevice returns the single booted simulator. Zero booted devices
// and more than one are both errors so auto-detection never guesses.
func (m *Manager) FindBootedDevice(ctx context.Context) (*domain.Device, error) {
	booted, err := m.ListBootedDevices(ctx)
	if err != nil {
		return nil, err
	}

	switch len(booted) {
	case 0:
		return nil, &NoBootedError{}
	case 1:
		return &booted[0], nil
	default:
		return nil, &MultipleBootedError{Devices: booted}
	}
}

// SelectDevices resolves the common --udid/--all/--type flag triple to a
// concrete device set. An explicit identifier wins; --all selects every
// available device of the class; otherwise the single booted device is used.
func (m *Manager) SelectDevices(ctx context.Context, nameOrUDID string, all bool, class domain.DeviceClass) ([]domain.Device, error) {
	if nameOrUDID != "" {
		d, err := m.FindDevice(ctx, nameOrUDID)
		if err != nil {
			return nil, err
		}
		return []domain.Device{*d}, nil
	}

	if all || (class != "" && class != domain.DeviceClassAny) {
		devices, err := m.ListDevices(ctx)
		if err != nil {
			return nil, err
		}
		return filterByClass(devices, class), nil
	}

	d, err := m.FindBootedDevice(ctx)
	if err != nil {
		return nil, err
	}
	return []domain.Device{*d}, nil
}

func filterByClass(devices []domain.Device, class domain.DeviceClass) []domain.Device {
	if class == "" || class == domain.DeviceClassAny {
		return devices
	}
	var out []domain.Device
	for _, d := range devices {
		if d.Class() == class {
			out = append(out, d)
		}
	}
	return out
}

// BootDevice boots a simulator by UDID
func (m *Manager) BootDevice(ctx context.Context, udid string) error {
	cmd := exec.CommandContext(ctx, m.xcrunPath, "simctl", "boot", udid)
	output, err := cmd.CombinedOutput()
	if err != nil {
		// Check if already booted
		if strings.Contains(string(output), "current state: Booted") {
			return nil // Already booted, not an error
		}
		return fmt.Errorf("failed to boot device: %s", strings.TrimSpace(string(output)))
	}
	return nil
}

// ShutdownDevice shuts down a simulator by UDID
func (m *Manager) ShutdownDevice(ctx context.Context, udid string) error {
	_, err := m.simctl(ctx, "shutdown", udid)
	if err != nil && strings.Contains(err.Error(), "current state: Shutdown") {
		return nil
	}
	return err
}

// CreateDevice creates a new simulator and returns its UDID.
// deviceType and runtime may be names ("iPhone 16 Pro") or identifiers;
// an empty runtime lets simctl pick the newest compatible one.
func (m *Manager) CreateDevice(ctx context.Context, name, deviceType, runtime string) (string, error) {
	args := []string{"create", name, deviceType}
	if runtime != "" {
		args = append(args, runtime)
	}
	out, err := m.simctl(ctx, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// DeleteDevice deletes a simulator by UDID
func (m *Manager) DeleteDevice(ctx context.Context, udid string) error {
	_, err := m.simctl(ctx, "delete", udid)
	return err
}

// EraseDevice factory-resets a simulator. The device must be shut down.
func (m *Manager) EraseDevice(ctx context.Context, udid string) error {
	_, err := m.simctl(ctx, "erase", udid)
	return err
}

// GetDeviceInfo returns the current info for a device by UDID
func (m *Manager) GetDeviceInfo(ctx context.Context, udid string) (*domain.Device, error) {
	devices, err := m.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	for _, d := range devices {
		if d.UDID == udid {
			return &d, nil
		}
	}

	return nil, &NotFoundError{Identifier: udid}
}

// WaitForBoot waits for a device to finish booting
func (m *Manager) WaitForBoot(ctx context.Context, udid string, timeout time.Duration) error {
	deadline := m.clock.Now().Add(timeout)
	ticker := m.clock.Ticker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if m.clock.Now().After(deadline) {
				return fmt.Errorf("timeout waiting for device to boot")
			}

			device, err := m.GetDeviceInfo(ctx, udid)
			if err != nil {
				continue
			}

			if device.IsBooted() {
				return nil
			}
		}
	}
}

// EnsureBooted boots a device if it's not already booted and waits for boot to complete
func (m *Manager) EnsureBooted(ctx context.Context, udid string) error {
	device, err := m.GetDeviceInfo(ctx, udid)
	if err != nil {
		return err
	}

	if device.IsBooted() {
		return nil
	}

	if err := m.BootDevice(ctx, udid); err != nil {
		return err
	}

	return m.WaitForBoot(ctx, udid, 60*time.Second)
}

// ListRuntimes returns available simulator runtimes
func (m *Manager) ListRuntimes(ctx context.Context) ([]domain.SimctlRuntime, error) {
	out, err := m.simctl(ctx, "list", "runtimes", "--json")
	if err != nil {
		return nil, err
	}
	var resp domain.SimctlRuntimesResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse runtimes: %w", err)
	}
	return resp.Runtimes, nil
}

// ListDeviceTypes returns available simulator device types
func (m *Manager) ListDeviceTypes(ctx context.Context) ([]domain.SimctlDeviceType, error) {
	out, err := m.simctl(ctx, "list", "devicetypes", "--json")
	if err != nil {
		return nil, err
	}
	var resp domain.SimctlDeviceTypesResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse device types: %w", err)
	}
	return resp.DeviceTypes, nil
}

// parseRuntimeName extracts a human-readable runtime name from the identifier
func parseRuntimeName(runtime string) string {
	// Example: "com.apple.CoreSimulator.SimRuntime.iOS-17-0" -> "iOS 17.0"
	parts := strings.Split(runtime, ".")
	if len(parts) == 0 {
		return runtime
	}

	lastPart := parts[len(parts)-1]

	segments := strings.Split(lastPart, "-")
	if len(segments) >= 2 {
		os := segments[0]
		version := strings.Join(segments[1:], ".")
		return fmt.Sprintf("%s %s", os, version)
	}

	return lastPart
}
