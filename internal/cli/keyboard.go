package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/skyler14/ios-simulator-skill/internal/idb"
	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// Key codes for the special keys idb understands. The names follow the
// HID usage table idb maps onto.
var specialKeys = map[string]int{
	"return":    40,
	"enter":     40,
	"escape":    41,
	"backspace": 42,
	"delete":    42,
	"tab":       43,
	"space":     44,
	"right":     79,
	"left":      80,
	"down":      81,
	"up":        82,
}

// Hardware buttons idb can press
var hardwareButtons = map[string]string{
	"home": "HOME",
	"lock": "LOCK",
	"side": "SIDE_BUTTON",
	"siri": "SIRI",
}

// KeyboardCmd types text or sends key events
type KeyboardCmd struct {
	Udid string `help:"Simulator UDID or name"`

	Text   string `help:"Text to type into the focused field"`
	Key    string `help:"Special key to press (return, escape, backspace, tab, space, up, down, left, right)"`
	Button string `help:"Hardware button to press (home, lock, side, siri)"`
	Clear  int    `help:"Press backspace N times before typing"`
}

// Run executes the keyboard command
func (c *KeyboardCmd) Run(globals *Globals) error {
	if c.Text == "" && c.Key == "" && c.Button == "" && c.Clear == 0 {
		return outputError(globals, "INVALID_FLAGS", "one of --text, --key, --button, or --clear is required")
	}

	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}

	client := idb.NewClient(globals.Log)
	if !client.Available() {
		return outputErrorHint(globals, "IDB_MISSING",
			"idb is not installed; keyboard input requires it",
			"install with: brew tap facebook/fb && brew install idb-companion")
	}

	var actions []string

	for i := 0; i < c.Clear; i++ {
		if err := client.KeyEvent(ctx, device.UDID, specialKeys["backspace"]); err != nil {
			return outputError(globals, "KEYBOARD_FAILED", err.Error())
		}
	}
	if c.Clear > 0 {
		actions = append(actions, fmt.Sprintf("cleared %d characters", c.Clear))
	}

	if c.Text != "" {
		if err := client.Text(ctx, device.UDID, c.Text); err != nil {
			return outputError(globals, "KEYBOARD_FAILED", err.Error())
		}
		actions = append(actions, fmt.Sprintf("typed %q", c.Text))
	}

	if c.Key != "" {
		code, ok := specialKeys[strings.ToLower(c.Key)]
		if !ok {
			return outputError(globals, "INVALID_FLAGS", fmt.Sprintf("unknown key: %s", c.Key))
		}
		if err := client.KeyEvent(ctx, device.UDID, code); err != nil {
			return outputError(globals, "KEYBOARD_FAILED", err.Error())
		}
		actions = append(actions, fmt.Sprintf("pressed %s", strings.ToLower(c.Key)))
	}

	if c.Button != "" {
		name, ok := hardwareButtons[strings.ToLower(c.Button)]
		if !ok {
			return outputError(globals, "INVALID_FLAGS", fmt.Sprintf("unknown button: %s", c.Button))
		}
		if err := client.HardwareButton(ctx, device.UDID, name); err != nil {
			return outputError(globals, "KEYBOARD_FAILED", err.Error())
		}
		actions = append(actions, fmt.Sprintf("pressed the %s button", strings.ToLower(c.Button)))
	}

	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).WriteResult("keyboard", true, map[string]any{
			"udid":    device.UDID,
			"actions": actions,
		})
	}
	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "%s on %s\n", capitalize(strings.Join(actions, ", ")), device.Name)
	}
	return nil
}
