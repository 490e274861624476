package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/skyler14/ios-simulator-skill/internal/idb"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// ScreenCmd maps the accessibility elements of the current screen
type ScreenCmd struct {
	Udid     string `help:"Simulator UDID or name"`
	Type     string `help:"Show only elements of this type (Button, TextField, ...)"`
	Hidden   bool   `help:"Include zero-sized (hidden) elements"`
	Disabled bool   `help:"Include disabled elements"`
}

// Run executes the screen command
func (c *ScreenCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}

	client := idb.NewClient(globals.Log)
	if !client.Available() {
		return outputErrorHint(globals, "IDB_MISSING",
			"idb is not installed; screen mapping requires it",
			"install with: brew tap facebook/fb && brew install idb-companion")
	}

	elements, err := client.DescribeAll(ctx, device.UDID)
	if err != nil {
		return outputError(globals, "SCREEN_MAP_FAILED", err.Error())
	}

	filtered := make([]domain.Element, 0, len(elements))
	for _, e := range elements {
		if !c.Hidden && !e.Visible {
			continue
		}
		if !c.Disabled && !e.Enabled {
			continue
		}
		if c.Type != "" && string(e.Type) != c.Type {
			continue
		}
		filtered = append(filtered, e)
	}

	if globals.JSON {
		return json.NewEncoder(globals.Stdout).Encode(domain.Screen{
			UDID:     device.UDID,
			Elements: filtered,
		})
	}

	if len(filtered) == 0 {
		fmt.Fprintln(globals.Stdout, "No elements on screen")
		return nil
	}

	// Concise by default; verbose adds frames and state
	for i, e := range filtered {
		if globals.Verbose {
			fmt.Fprintf(globals.Stdout, "[%d] %s  frame=(%.0f,%.0f %.0fx%.0f) enabled=%v\n",
				i, e.String(), e.Frame.X, e.Frame.Y, e.Frame.Width, e.Frame.Height, e.Enabled)
		} else {
			fmt.Fprintf(globals.Stdout, "[%d] %s\n", i, e.String())
		}
	}
	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "\n%d element(s) on %s\n", len(filtered), device.Name)
	}
	return nil
}
