package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// ListCmd lists available simulators
type ListCmd struct {
	Booted  bool   `short:"b" help:"Show only booted simulators"`
	Type    string `help:"Device class filter: iphone, ipad, watch, tv"`
	Runtime string `help:"Filter by runtime version (e.g. '17', 'iOS 17')"`
}

// Run executes the list command
func (c *ListCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	var devices []domain.Device
	var err error

	if c.Booted {
		devices, err = mgr.ListBootedDevices(ctx)
	} else {
		devices, err = mgr.ListDevices(ctx)
	}
	if err != nil {
		return outputError(globals, "LIST_FAILED", err.Error())
	}

	if c.Type != "" {
		class := domain.ParseDeviceClass(c.Type)
		var filtered []domain.Device
		for _, d := range devices {
			if d.Class() == class {
				filtered = append(filtered, d)
			}
		}
		devices = filtered
	}

	if c.Runtime != "" {
		devices = filterByRuntime(devices, c.Runtime)
	}

	if globals.JSON {
		encoder := json.NewEncoder(globals.Stdout)
		for _, d := range devices {
			if err := encoder.Encode(d); err != nil {
				return err
			}
		}
		return nil
	}
	return c.outputText(globals, devices)
}

func (c *ListCmd) outputText(globals *Globals, devices []domain.Device) error {
	if len(devices) == 0 {
		fmt.Fprintln(globals.Stdout, "No simulators found")
		return nil
	}

	rows := make([][]string, 0, len(devices))
	bootedCount := 0
	for _, d := range devices {
		state := string(d.State)
		if d.IsBooted() {
			state = "* " + state
			bootedCount++
		}
		rows = append(rows, []string{d.Name, state, d.RuntimeIdentifier, d.UDID})
	}

	if err := output.Table(globals.Stdout, []string{"NAME", "STATE", "RUNTIME", "UDID"}, rows); err != nil {
		return err
	}

	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "\n%d simulator(s), %d booted\n", len(devices), bootedCount)
	}
	return nil
}

// filterByRuntime keeps devices whose runtime matches the given fragment,
// accepting either "17" or "iOS 17" style input.
func filterByRuntime(devices []domain.Device, runtime string) []domain.Device {
	needle := strings.ToLower(strings.TrimSpace(runtime))
	var out []domain.Device
	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.RuntimeIdentifier), needle) {
			out = append(out, d)
		}
	}
	return out
}
