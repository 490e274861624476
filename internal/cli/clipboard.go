package cli

import (
	"context"
	"fmt"

	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// ClipboardCmd reads or writes the simulator pasteboard
type ClipboardCmd struct {
	Udid string `help:"Simulator UDID or name"`

	Set string `help:"Text to place on the pasteboard (omit to read it)"`
}

// Run executes the clipboard command
func (c *ClipboardCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}

	if c.Set != "" {
		if err := mgr.SetPasteboard(ctx, device.UDID, c.Set); err != nil {
			return outputError(globals, "CLIPBOARD_FAILED", err.Error())
		}
		if globals.JSON {
			return output.NewJSONWriter(globals.Stdout).WriteResult("clipboard", true, map[string]string{
				"udid": device.UDID,
			})
		}
		if !globals.Quiet {
			fmt.Fprintf(globals.Stdout, "Copied %d bytes to %s\n", len(c.Set), device.Name)
		}
		return nil
	}

	text, err := mgr.GetPasteboard(ctx, device.UDID)
	if err != nil {
		return outputError(globals, "CLIPBOARD_FAILED", err.Error())
	}
	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).WriteResult("clipboard", true, map[string]string{
			"udid": device.UDID,
			"text": text,
		})
	}
	fmt.Fprintln(globals.Stdout, text)
	return nil
}
