package cli

import (
	"context"
	"fmt"

	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// StatusbarCmd overrides or clears the simulator status bar, typically
// to get clean screenshots (9:41, full battery, full signal)
type StatusbarCmd struct {
	Udid string `help:"Simulator UDID or name"`

	Demo         bool   `help:"Apply the classic demo appearance (9:41, full battery, wifi)"`
	Time         string `help:"Override the clock, e.g. 9:41"`
	BatteryLevel int    `name:"battery-level" default:"-1" help:"Battery percentage 0-100"`
	BatteryState string `name:"battery-state" help:"Battery state: charged, charging, discharging"`
	Network      string `help:"Data network: wifi, 3g, 4g, lte, 5g"`
	WifiBars     int    `name:"wifi-bars" default:"-1" help:"WiFi bars 0-3"`
	CellularBars int    `name:"cellular-bars" default:"-1" help:"Cellular bars 0-4"`
	Operator     string `help:"Carrier name"`
	Clear        bool   `help:"Remove all overrides"`
}

// Run executes the statusbar command
func (c *StatusbarCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}

	if c.Clear {
		if err := mgr.ClearStatusBar(ctx, device.UDID); err != nil {
			return outputError(globals, "STATUSBAR_FAILED", err.Error())
		}
		return c.report(globals, device.UDID, device.Name, "cleared")
	}

	override := simulator.StatusBarOverride{
		Time:         c.Time,
		BatteryState: c.BatteryState,
		BatteryLevel: c.BatteryLevel,
		DataNetwork:  c.Network,
		WifiBars:     c.WifiBars,
		CellularBars: c.CellularBars,
		OperatorName: c.Operator,
	}
	if c.Demo {
		override = simulator.StatusBarOverride{
			Time:         "9:41",
			BatteryState: "charged",
			BatteryLevel: 100,
			DataNetwork:  "wifi",
			WifiBars:     3,
			CellularBars: 4,
		}
	}

	if err := mgr.OverrideStatusBar(ctx, device.UDID, override); err != nil {
		return outputError(globals, "STATUSBAR_FAILED", err.Error())
	}
	return c.report(globals, device.UDID, device.Name, "overridden")
}

func (c *StatusbarCmd) report(globals *Globals, udid, name, state string) error {
	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).WriteResult("statusbar", true, map[string]string{
			"udid":  udid,
			"state": state,
		})
	}
	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "Status bar %s on %s\n", state, name)
	}
	return nil
}
