package simulator

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Screenshot captures the device screen to a PNG file
func (m *Manager) Screenshot(ctx context.Context, udid, path string) error {
	_, err := m.simctl(ctx, "io", udid, "screenshot", path)
	return err
}

// GetPasteboard returns the simulator's pasteboard contents
func (m *Manager) GetPasteboard(ctx context.Context, udid string) (string, error) {
	out, err := m.simctl(ctx, "pbpaste", udid)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// SetPasteboard writes text to the simulator's pasteboard
func (m *Manager) SetPasteboard(ctx context.Context, udid, text string) error {
	cmd := exec.CommandContext(ctx, m.xcrunPath, "simctl", "pbcopy", udid)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("simctl pbcopy failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

// StatusBarOverride holds status bar appearance overrides.
// Zero-valued fields are left untouched.
type StatusBarOverride struct {
	Time         string // e.g. "9:41"
	BatteryState string // charged, charging, discharging
	BatteryLevel int    // 0-100, -1 to skip
	DataNetwork  string // wifi, 3g, 4g, lte, lte-a, lte+, 5g, 5g+, 5g-uwb, 5g-uc
	WifiBars     int    // 0-3, -1 to skip
	CellularBars int    // 0-4, -1 to skip
	OperatorName string
}

// OverrideStatusBar applies status bar appearance overrides
func (m *Manager) OverrideStatusBar(ctx context.Context, udid string, o StatusBarOverride) error {
	args := []string{"status_bar", udid, "override"}
	if o.Time != "" {
		args = append(args, "--time", o.Time)
	}
	if o.BatteryState != "" {
		args = append(args, "--batteryState", o.BatteryState)
	}
	if o.BatteryLevel >= 0 {
		args = append(args, "--batteryLevel", fmt.Sprintf("%d", o.BatteryLevel))
	}
	if o.DataNetwork != "" {
		args = append(args, "--dataNetwork", o.DataNetwork)
	}
	if o.WifiBars >= 0 {
		args = append(args, "--wifiBars", fmt.Sprintf("%d", o.WifiBars))
	}
	if o.CellularBars >= 0 {
		args = append(args, "--cellularBars", fmt.Sprintf("%d", o.CellularBars))
	}
	if o.OperatorName != "" {
		args = append(args, "--operatorName", o.OperatorName)
	}
	if len(args) == 3 {
		return fmt.Errorf("no status bar overrides specified")
	}
	_, err := m.simctl(ctx, args...)
	return err
}

// ClearStatusBar removes all status bar overrides
func (m *Manager) ClearStatusBar(ctx context.Context, udid string) error {
	_, err := m.simctl(ctx, "status_bar", udid, "clear")
	return err
}

// Push delivers an APNS payload to an app. payloadPath is a JSON file
// containing the "aps" dictionary; "-" reads from stdin via simctl.
func (m *Manager) Push(ctx context.Context, udid, bundleID, payloadPath string) error {
	_, err := m.simctl(ctx, "push", udid, bundleID, payloadPath)
	return err
}

// OpenURL opens a URL (including custom schemes) on the simulator
func (m *Manager) OpenURL(ctx context.Context, udid, url string) error {
	_, err := m.simctl(ctx, "openurl", udid, url)
	return err
}

// Recording is a running `simctl io recordVideo` process. The recording
// ends when Stop interrupts it; simctl finalizes the file on SIGINT.
type Recording struct {
	cmd  *exec.Cmd
	Path string
}

// StartRecording begins capturing the screen to an mp4 file. The command
// deliberately ignores context cancellation: a SIGKILL from CommandContext
// would leave a truncated file, so lifetime is managed through Stop.
func (m *Manager) StartRecording(udid, path string) (*Recording, error) {
	cmd := exec.Command(m.xcrunPath, "simctl", "io", udid, "recordVideo", "--codec", "h264", "--force", path)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start recording: %w", err)
	}
	return &Recording{cmd: cmd, Path: path}, nil
}

// Stop interrupts the recorder and waits for the file to be finalized
func (r *Recording) Stop() error {
	if r.cmd.Process == nil {
		return nil
	}
	if err := r.cmd.Process.Signal(os.Interrupt); err != nil {
		return err
	}
	// recordVideo exits nonzero on SIGINT even though the file is valid
	_ = r.cmd.Wait()
	return nil
}

// Pid returns the recorder's process ID
func (r *Recording) Pid() int {
	if r.cmd.Process == nil {
		return 0
	}
	return r.cmd.Process.Pid
}
