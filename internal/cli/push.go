package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// PushCmd delivers a simulated APNS notification
type PushCmd struct {
	Udid string `help:"Simulator UDID or name"`

	Bundle  string `help:"Target app bundle identifier" required:""`
	Payload string `help:"Path to a JSON payload file ('-' for stdin)"`
	Title   string `help:"Notification title (builds a payload when --payload is omitted)"`
	Body    string `help:"Notification body"`
	Badge   int    `default:"-1" help:"App badge count"`
	Sound   string `help:"Notification sound name"`
}

// Run executes the push command
func (c *PushCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}

	payloadPath := c.Payload
	if payloadPath == "" {
		if c.Title == "" && c.Body == "" {
			return outputError(globals, "INVALID_FLAGS", "either --payload or --title/--body is required")
		}
		payloadPath, err = c.writePayload()
		if err != nil {
			return outputError(globals, "PUSH_FAILED", err.Error())
		}
		defer os.Remove(payloadPath)
	}

	if err := mgr.Push(ctx, device.UDID, c.Bundle, payloadPath); err != nil {
		return outputError(globals, "PUSH_FAILED", err.Error())
	}

	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).WriteResult("push", true, map[string]string{
			"udid":      device.UDID,
			"bundle_id": c.Bundle,
		})
	}
	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "Delivered push to %s on %s\n", c.Bundle, device.Name)
	}
	return nil
}

// writePayload builds an aps dictionary from the flag values and writes it
// to a temp file simctl can read.
func (c *PushCmd) writePayload() (string, error) {
	alert := map[string]any{}
	if c.Title != "" {
		alert["title"] = c.Title
	}
	if c.Body != "" {
		alert["body"] = c.Body
	}
	aps := map[string]any{"alert": alert}
	if c.Badge >= 0 {
		aps["badge"] = c.Badge
	}
	if c.Sound != "" {
		aps["sound"] = c.Sound
	}

	data, err := json.Marshal(map[string]any{"aps": aps})
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "ios-sim-push-*.json")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return filepath.Clean(f.Name()), nil
}
