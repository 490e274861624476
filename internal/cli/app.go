package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
	"golang.org/x/sync/errgroup"
)

// AppCmd manages app lifecycle: launch, terminate, install, uninstall
type AppCmd struct {
	Udid string `help:"Simulator UDID or name"`

	Launch            string `help:"Launch app by bundle ID"`
	Console           bool   `help:"Stay attached and capture app console output (with --launch)"`
	TerminateExisting bool   `help:"Terminate any running instance first (with --launch)"`
	Terminate         string `help:"Terminate app by bundle ID"`
	Install           string `type:"path" help:"Install an .app bundle from path"`
	Uninstall         string `help:"Uninstall app by bundle ID"`
	OpenURL           string `name:"open-url" help:"Open a URL or deep link (myapp://...) on the simulator"`
}

// ConsoleOutput represents a line of captured console output
type ConsoleOutput struct {
	Type          string `json:"type"` // Always "console"
	SchemaVersion int    `json:"schemaVersion"`
	Timestamp     string `json:"timestamp"`
	Stream        string `json:"stream"` // "stdout" or "stderr"
	Message       string `json:"message"`
	BundleID      string `json:"bundle_id,omitempty"`
}

// Run executes the app command
func (c *AppCmd) Run(globals *Globals) error {
	actions := 0
	for _, set := range []bool{c.Launch != "", c.Terminate != "", c.Install != "", c.Uninstall != "", c.OpenURL != ""} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		return outputError(globals, "INVALID_FLAGS",
			"exactly one of --launch, --terminate, --install, --uninstall, --open-url is required")
	}

	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}
	if !device.IsBooted() {
		return outputErrorHint(globals, "DEVICE_NOT_BOOTED",
			fmt.Sprintf("simulator %s is not booted", device.Name),
			fmt.Sprintf("boot it with: ios-sim boot --udid %s", device.UDID))
	}

	switch {
	case c.Install != "":
		if err := mgr.InstallApp(ctx, device.UDID, c.Install); err != nil {
			return outputError(globals, "INSTALL_FAILED", err.Error())
		}
		reportResult(globals, "install", *device, "installed "+c.Install)
		return nil

	case c.Uninstall != "":
		if err := mgr.UninstallApp(ctx, device.UDID, c.Uninstall); err != nil {
			return outputError(globals, "UNINSTALL_FAILED", err.Error())
		}
		reportResult(globals, "uninstall", *device, "uninstalled "+c.Uninstall)
		return nil

	case c.Terminate != "":
		if err := mgr.TerminateApp(ctx, device.UDID, c.Terminate); err != nil {
			return outputError(globals, "TERMINATE_FAILED", err.Error())
		}
		reportResult(globals, "terminate", *device, "terminated "+c.Terminate)
		return nil

	case c.OpenURL != "":
		if err := mgr.OpenURL(ctx, device.UDID, c.OpenURL); err != nil {
			return outputError(globals, "OPEN_URL_FAILED", err.Error())
		}
		reportResult(globals, "open_url", *device, "opened "+c.OpenURL)
		return nil

	default:
		if c.Console {
			return c.launchWithConsole(globals, mgr, device)
		}
		if c.TerminateExisting {
			if err := mgr.TerminateApp(ctx, device.UDID, c.Launch); err != nil {
				return outputError(globals, "TERMINATE_FAILED", err.Error())
			}
		}
		pid, err := mgr.LaunchApp(ctx, device.UDID, c.Launch)
		if err != nil {
			return outputError(globals, "LAUNCH_FAILED", err.Error())
		}
		if globals.JSON {
			return output.NewJSONWriter(globals.Stdout).WriteResult("launch", true, map[string]interface{}{
				"bundle_id": c.Launch,
				"pid":       pid,
				"udid":      device.UDID,
			})
		}
		if !globals.Quiet {
			fmt.Fprintf(globals.Stdout, "Launched %s on %s (pid %d)\n", c.Launch, device.Name, pid)
		}
		return nil
	}
}

// launchWithConsole launches via `simctl launch --console` and streams the
// app's stdout/stderr until the app exits or the user interrupts.
func (c *AppCmd) launchWithConsole(globals *Globals, mgr *simulator.Manager, device *domain.Device) error {
	signalCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	group, ctx := errgroup.WithContext(signalCtx)

	args := []string{"simctl", "launch", "--console-pty"}
	if c.TerminateExisting {
		args = append(args, "--terminate-running-process")
	}
	args = append(args, device.UDID, c.Launch)

	globals.Log.Debug(fmt.Sprintf("running: xcrun %v", args))

	cmd := exec.CommandContext(ctx, "xcrun", args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return outputError(globals, "LAUNCH_FAILED", fmt.Sprintf("failed to create stdout pipe: %v", err))
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return outputError(globals, "LAUNCH_FAILED", fmt.Sprintf("failed to create stderr pipe: %v", err))
	}

	if err := cmd.Start(); err != nil {
		return outputError(globals, "LAUNCH_FAILED", fmt.Sprintf("failed to launch app: %v", err))
	}

	scan := func(stream string, pipe io.Reader) func() error {
		return func() error {
			scanner := bufio.NewScanner(pipe)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for scanner.Scan() {
				c.outputConsoleLine(globals, stream, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				if errors.Is(err, bufio.ErrTooLong) {
					return fmt.Errorf("%s line too long (>1MiB): %w", stream, err)
				}
				return fmt.Errorf("%s read error: %w", stream, err)
			}
			return nil
		}
	}
	group.Go(scan("stdout", stdout))
	group.Go(scan("stderr", stderr))

	waitErr := cmd.Wait()
	scanErr := group.Wait()

	if signalCtx.Err() != nil {
		return nil // interrupted by user
	}
	if waitErr != nil {
		return outputError(globals, "APP_EXITED", fmt.Sprintf("app exited with error: %v", waitErr))
	}
	return scanErr
}

func (c *AppCmd) outputConsoleLine(globals *Globals, stream, line string) {
	if globals.JSON {
		output.NewJSONWriter(globals.Stdout).Write(ConsoleOutput{
			Type:          "console",
			SchemaVersion: output.SchemaVersion,
			Timestamp:     time.Now().Format(time.RFC3339Nano),
			Stream:        stream,
			Message:       line,
			BundleID:      c.Launch,
		})
		return
	}
	fmt.Fprintln(globals.Stdout, line)
}
