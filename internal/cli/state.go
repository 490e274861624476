package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/skyler14/ios-simulator-skill/internal/idb"
	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// StateCmd captures a full snapshot of the simulator: a screenshot, the
// accessibility element tree, and device metadata, written to a directory
// for later inspection or diffing
type StateCmd struct {
	Udid string `help:"Simulator UDID or name"`

	Out string `help:"Snapshot directory (default: state-<timestamp>)"`
}

// Run executes the state command
func (c *StateCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}

	dir := c.Out
	if dir == "" {
		dir = fmt.Sprintf("state-%s", time.Now().Format("20060102-150405"))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return outputError(globals, "STATE_FAILED", err.Error())
	}

	if err := mgr.Screenshot(ctx, device.UDID, filepath.Join(dir, "screenshot.png")); err != nil {
		return outputError(globals, "STATE_FAILED", fmt.Sprintf("screenshot: %v", err))
	}

	if err := writeJSONFile(filepath.Join(dir, "device.json"), device); err != nil {
		return outputError(globals, "STATE_FAILED", err.Error())
	}

	elementCount := 0
	client := idb.NewClient(globals.Log)
	if client.Available() {
		elements, err := client.DescribeAll(ctx, device.UDID)
		if err != nil {
			emitWarning(globals, fmt.Sprintf("could not read element tree: %v", err))
		} else {
			elementCount = len(elements)
			if err := writeJSONFile(filepath.Join(dir, "elements.json"), elements); err != nil {
				return outputError(globals, "STATE_FAILED", err.Error())
			}
		}
	} else {
		emitWarning(globals, "idb not installed; snapshot has no element tree")
	}

	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).WriteResult("state", true, map[string]any{
			"udid":     device.UDID,
			"dir":      dir,
			"elements": elementCount,
		})
	}
	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "Saved state of %s to %s/ (%d elements)\n", device.Name, dir, elementCount)
	}
	return nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
