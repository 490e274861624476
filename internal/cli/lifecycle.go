package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// BootCmd boots simulators
type BootCmd struct {
	deviceFlags
	NoWait bool `help:"Don't wait for boot to complete"`
}

// Run executes the boot command
func (c *BootCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	devices, err := resolveMany(ctx, mgr, globals, c.deviceFlags)
	if err != nil {
		return deviceError(globals, err)
	}
	if len(devices) == 0 {
		emitWarning(globals, "no simulators matched the selection")
		return nil
	}

	for _, d := range devices {
		if d.IsBooted() {
			reportResult(globals, "boot", d, "already booted")
			continue
		}
		if err := mgr.BootDevice(ctx, d.UDID); err != nil {
			return outputError(globals, "BOOT_FAILED", fmt.Sprintf("%s: %v", d.Name, err))
		}
		if !c.NoWait {
			if err := mgr.WaitForBoot(ctx, d.UDID, 60*time.Second); err != nil {
				return outputError(globals, "BOOT_TIMEOUT", fmt.Sprintf("%s: %v", d.Name, err))
			}
		}
		reportResult(globals, "boot", d, "booted")
	}
	return nil
}

// ShutdownCmd shuts down simulators
type ShutdownCmd struct {
	deviceFlags
}

// Run executes the shutdown command
func (c *ShutdownCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	devices, err := resolveMany(ctx, mgr, globals, c.deviceFlags)
	if err != nil {
		return deviceError(globals, err)
	}
	if len(devices) == 0 {
		emitWarning(globals, "no simulators matched the selection")
		return nil
	}

	for _, d := range devices {
		if !d.IsBooted() {
			reportResult(globals, "shutdown", d, "already shut down")
			continue
		}
		if err := mgr.ShutdownDevice(ctx, d.UDID); err != nil {
			return outputError(globals, "SHUTDOWN_FAILED", fmt.Sprintf("%s: %v", d.Name, err))
		}
		reportResult(globals, "shutdown", d, "shut down")
	}
	return nil
}

// CreateCmd creates a new simulator
type CreateCmd struct {
	Device       string `help:"Device type name or identifier (e.g. 'iPhone 16 Pro')"`
	Name         string `help:"Simulator name (defaults to the device type name)"`
	Runtime      string `help:"Runtime name or identifier (defaults to newest compatible)"`
	Boot         bool   `help:"Boot the new simulator after creating it"`
	ListTypes    bool   `help:"List available device types and exit"`
	ListRuntimes bool   `help:"List available runtimes and exit"`
}

// Run executes the create command
func (c *CreateCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	if c.ListTypes || c.ListRuntimes {
		return c.listChoices(ctx, globals, mgr)
	}
	if c.Device == "" {
		return outputError(globals, "INVALID_FLAGS",
			"--device is required (see --list-types for available device types)")
	}

	name := c.Name
	if name == "" {
		name = c.Device
	}

	udid, err := mgr.CreateDevice(ctx, name, c.Device, c.Runtime)
	if err != nil {
		return outputError(globals, "CREATE_FAILED", err.Error())
	}

	if c.Boot {
		if err := mgr.EnsureBooted(ctx, udid); err != nil {
			return outputError(globals, "BOOT_FAILED", err.Error())
		}
	}

	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).WriteResult("create", true, map[string]string{
			"udid": udid,
			"name": name,
		})
	}
	fmt.Fprintf(globals.Stdout, "Created %s\n", name)
	fmt.Fprintf(globals.Stdout, "UDID: %s\n", udid)
	return nil
}

// listChoices prints the device types and runtimes simctl can create from
func (c *CreateCmd) listChoices(ctx context.Context, globals *Globals, mgr *simulator.Manager) error {
	out := map[string]any{"type": "create_choices"}

	if c.ListTypes {
		types, err := mgr.ListDeviceTypes(ctx)
		if err != nil {
			return outputError(globals, "CREATE_FAILED", err.Error())
		}
		if globals.JSON {
			out["device_types"] = types
		} else {
			fmt.Fprintln(globals.Stdout, "Device types:")
			for _, t := range types {
				fmt.Fprintf(globals.Stdout, "  %-36s %s\n", t.Name, t.Identifier)
			}
		}
	}

	if c.ListRuntimes {
		runtimes, err := mgr.ListRuntimes(ctx)
		if err != nil {
			return outputError(globals, "CREATE_FAILED", err.Error())
		}
		if globals.JSON {
			out["runtimes"] = runtimes
		} else {
			fmt.Fprintln(globals.Stdout, "Runtimes:")
			for _, r := range runtimes {
				avail := ""
				if !r.IsAvailable {
					avail = " (unavailable)"
				}
				fmt.Fprintf(globals.Stdout, "  %-24s %s%s\n", r.Name, r.Identifier, avail)
			}
		}
	}

	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).Write(out)
	}
	return nil
}

// DeleteCmd deletes simulators
type DeleteCmd struct {
	deviceFlags
	Yes bool `help:"Skip the confirmation prompt"`
}

// Run executes the delete command
func (c *DeleteCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	devices, err := resolveMany(ctx, mgr, globals, c.deviceFlags)
	if err != nil {
		return deviceError(globals, err)
	}
	if len(devices) == 0 {
		emitWarning(globals, "no simulators matched the selection")
		return nil
	}

	if !c.Yes {
		if !confirmDestructive(globals, "delete", devices) {
			return outputError(globals, "CONFIRMATION_REQUIRED",
				"refusing to delete without --yes")
		}
	}

	for _, d := range devices {
		if err := mgr.DeleteDevice(ctx, d.UDID); err != nil {
			return outputError(globals, "DELETE_FAILED", fmt.Sprintf("%s: %v", d.Name, err))
		}
		reportResult(globals, "delete", d, "deleted")
	}
	return nil
}

// EraseCmd factory-resets simulators
type EraseCmd struct {
	deviceFlags
	Yes bool `help:"Skip the confirmation prompt"`
}

// Run executes the erase command
func (c *EraseCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	devices, err := resolveMany(ctx, mgr, globals, c.deviceFlags)
	if err != nil {
		return deviceError(globals, err)
	}
	if len(devices) == 0 {
		emitWarning(globals, "no simulators matched the selection")
		return nil
	}

	if !c.Yes {
		if !confirmDestructive(globals, "erase", devices) {
			return outputError(globals, "CONFIRMATION_REQUIRED",
				"refusing to erase without --yes")
		}
	}

	for _, d := range devices {
		// simctl refuses to erase a booted device
		if d.IsBooted() {
			if err := mgr.ShutdownDevice(ctx, d.UDID); err != nil {
				return outputError(globals, "SHUTDOWN_FAILED", fmt.Sprintf("%s: %v", d.Name, err))
			}
		}
		if err := mgr.EraseDevice(ctx, d.UDID); err != nil {
			return outputError(globals, "ERASE_FAILED", fmt.Sprintf("%s: %v", d.Name, err))
		}
		reportResult(globals, "erase", d, "erased")
	}
	return nil
}

// reportResult emits a per-device operation result in the active format
func reportResult(globals *Globals, op string, d domain.Device, detail string) {
	if globals.JSON {
		output.NewJSONWriter(globals.Stdout).WriteResult(op, true, map[string]string{
			"udid":   d.UDID,
			"name":   d.Name,
			"detail": detail,
		})
		return
	}
	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "%s (%s): %s\n", d.Name, d.UDID, detail)
	}
}

// confirmDestructive prompts on a TTY; non-interactive runs must pass --yes.
func confirmDestructive(globals *Globals, op string, devices []domain.Device) bool {
	if globals.JSON || !isatty.IsTerminal(os.Stdin.Fd()) {
		return false
	}

	fmt.Fprintf(globals.Stderr, "About to %s %d simulator(s):\n", op, len(devices))
	for _, d := range devices {
		fmt.Fprintf(globals.Stderr, "  %s (%s)\n", d.Name, d.UDID)
	}
	fmt.Fprintf(globals.Stderr, "Proceed? [y/N] ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
