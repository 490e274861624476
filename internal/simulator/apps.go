package simulator

import (
	"context"
	"fmt"
	"strings"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"howett.net/plist"
)

// plistAppInfo is the structure from simctl listapps plist output
type plistAppInfo struct {
	ApplicationType    string `plist:"ApplicationType"`
	Bundle             string `plist:"Bundle"`
	BundleIdentifier   string `plist:"CFBundleIdentifier"`
	BundleName         string `plist:"CFBundleName"`
	BundleDisplayName  string `plist:"CFBundleDisplayName"`
	BundleVersion      string `plist:"CFBundleVersion"`
	BundleShortVersion string `plist:"CFBundleShortVersionString"`
	Path               string `plist:"Path"`
	DataContainer      string `plist:"DataContainer"`
}

// ListApps returns the apps installed on a booted simulator
func (m *Manager) ListApps(ctx context.Context, udid string) ([]domain.App, error) {
	output, err := m.simctl(ctx, "listapps", udid)
	if err != nil {
		return nil, err
	}

	var appsDict map[string]plistAppInfo
	if _, err := plist.Unmarshal(output, &appsDict); err != nil {
		return nil, fmt.Errorf("failed to parse apps plist: %w", err)
	}

	var apps []domain.App
	for bundleID, info := range appsDict {
		name := info.BundleDisplayName
		if name == "" {
			name = info.BundleName
		}
		if name == "" {
			name = bundleID
		}

		version := info.BundleShortVersion
		if version == "" {
			version = info.BundleVersion
		}

		appType := domain.AppTypeSystem
		if info.ApplicationType == "User" {
			appType = domain.AppTypeUser
		}

		apps = append(apps, domain.App{
			BundleID:    bundleID,
			Name:        name,
			Version:     version,
			BuildNumber: info.BundleVersion,
			Path:        info.Path,
			DataPath:    info.DataContainer,
			Type:        appType,
		})
	}

	return apps, nil
}

// InstallApp installs an .app bundle onto a simulator
func (m *Manager) InstallApp(ctx context.Context, udid, appPath string) error {
	_, err := m.simctl(ctx, "install", udid, appPath)
	return err
}

// UninstallApp removes an app from a simulator
func (m *Manager) UninstallApp(ctx context.Context, udid, bundleID string) error {
	_, err := m.simctl(ctx, "uninstall", udid, bundleID)
	return err
}

// TerminateApp terminates a running app. Terminating an app that is not
// running is not an error.
func (m *Manager) TerminateApp(ctx context.Context, udid, bundleID string) error {
	_, err := m.simctl(ctx, "terminate", udid, bundleID)
	if err != nil {
		// simctl reports "found nothing to terminate" when the app is not running
		if strings.Contains(err.Error(), "found nothing to terminate") ||
			strings.Contains(err.Error(), "no such process") {
			return nil
		}
	}
	return err
}

// LaunchApp launches an app and returns its PID
func (m *Manager) LaunchApp(ctx context.Context, udid, bundleID string) (int, error) {
	out, err := m.simctl(ctx, "launch", udid, bundleID)
	if err != nil {
		return 0, err
	}
	return parseLaunchPID(bundleID, out)
}

// parseLaunchPID extracts the PID from simctl launch output, which is
// "com.example.app: 12345" on success.
func parseLaunchPID(bundleID string, out []byte) (int, error) {
	var pid int
	if _, err := fmt.Sscanf(strings.TrimSpace(string(out)), bundleID+": %d", &pid); err != nil {
		return 0, fmt.Errorf("unexpected launch output: %q", strings.TrimSpace(string(out)))
	}
	return pid, nil
}
