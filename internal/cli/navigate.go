package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/skyler14/ios-simulator-skill/internal/idb"
	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// NavigateCmd finds an element semantically and optionally interacts with it
type NavigateCmd struct {
	Udid      string `help:"Simulator UDID or name"`
	FindText  string `name:"find-text" help:"Find element whose label/value contains this text"`
	FindType  string `name:"find-type" help:"Find element of this type (Button, TextField, SecureTextField, ...)"`
	Index     int    `default:"0" help:"Which match to use when several elements match"`
	Tap       bool   `help:"Tap the found element"`
	EnterText string `name:"enter-text" help:"Tap the found element, then type this text"`
}

// Run executes the navigate command
func (c *NavigateCmd) Run(globals *Globals) error {
	if c.FindText == "" && c.FindType == "" {
		return outputError(globals, "INVALID_FLAGS",
			"at least one of --find-text or --find-type is required")
	}
	if c.Tap && c.EnterText != "" {
		return outputError(globals, "INVALID_FLAGS",
			"--tap and --enter-text are mutually exclusive (--enter-text taps first)")
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
			"idb is not installed; semantic navigation requires it",
			"install with: brew tap facebook/fb && brew install idb-companion")
	}

	elements, err := client.DescribeAll(ctx, device.UDID)
	if err != nil {
		return outputError(globals, "SCREEN_MAP_FAILED", err.Error())
	}

	query := idb.Query{
		Text:  c.FindText,
		Type:  domain.ElementType(c.FindType),
		Index: c.Index,
	}
	element, err := idb.Find(elements, query)
	if err != nil {
		var notFound *idb.ElementNotFoundError
		if errors.As(err, &notFound) {
			return outputErrorHint(globals, "ELEMENT_NOT_FOUND", err.Error(),
				"run 'ios-sim screen' to see what is on screen")
		}
		return outputError(globals, "ELEMENT_NOT_FOUND", err.Error())
	}

	action := "found"
	x, y := element.Frame.Center()

	switch {
	case c.Tap:
		if err := client.Tap(ctx, device.UDID, x, y); err != nil {
			return outputError(globals, "TAP_FAILED", err.Error())
		}
		action = "tapped"
	case c.EnterText != "":
		if err := client.Tap(ctx, device.UDID, x, y); err != nil {
			return outputError(globals, "TAP_FAILED", err.Error())
		}
		if err := client.Text(ctx, device.UDID, c.EnterText); err != nil {
			return outputError(globals, "TEXT_INPUT_FAILED", err.Error())
		}
		action = "entered text"
	}

	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).WriteResult("navigate", true, map[string]interface{}{
			"action":  action,
			"element": element,
			"x":       x,
			"y":       y,
		})
	}
	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "%s %s at (%.0f, %.0f)\n", capitalize(action), element.String(), x, y)
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
