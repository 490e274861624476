package cli

import (
	"context"
	"fmt"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/skyler14/ios-simulator-skill/internal/idb"
	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// GestureCmd performs swipes, scrolls, and long presses
type GestureCmd struct {
	Udid string `help:"Simulator UDID or name"`

	Swipe    string  `help:"Swipe direction: up, down, left, right"`
	Scroll   string  `help:"Scroll direction: up, down, left, right (inverse swipe)"`
	Press    bool    `help:"Long press at --x/--y"`
	X        float64 `default:"-1" help:"X coordinate (for --press or custom swipes)"`
	Y        float64 `default:"-1" help:"Y coordinate"`
	ToX      float64 `name:"to-x" default:"-1" help:"Swipe end X (with --x/--y for a custom swipe)"`
	ToY      float64 `name:"to-y" default:"-1" help:"Swipe end Y"`
	Duration float64 `default:"0.5" help:"Gesture duration in seconds"`
}

// Run executes the gesture command
func (c *GestureCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}

	client := idb.NewClient(globals.Log)
	if !client.Available() {
		return outputErrorHint(globals, "IDB_MISSING",
			"idb is not installed; gestures require it",
			"install with: brew tap facebook/fb && brew install idb-companion")
	}

	switch {
	case c.Press:
		if c.X < 0 || c.Y < 0 {
			return outputError(globals, "INVALID_FLAGS", "--press requires --x and --y")
		}
		if err := client.LongPress(ctx, device.UDID, c.X, c.Y, c.Duration); err != nil {
			return outputError(globals, "GESTURE_FAILED", err.Error())
		}
		return c.report(globals, device, fmt.Sprintf("long press at (%.0f, %.0f)", c.X, c.Y))

	case c.X >= 0 && c.Y >= 0 && c.ToX >= 0 && c.ToY >= 0:
		if err := client.Swipe(ctx, device.UDID, c.X, c.Y, c.ToX, c.ToY, c.Duration); err != nil {
			return outputError(globals, "GESTURE_FAILED", err.Error())
		}
		return c.report(globals, device,
			fmt.Sprintf("swipe (%.0f, %.0f) -> (%.0f, %.0f)", c.X, c.Y, c.ToX, c.ToY))

	case c.Swipe != "" || c.Scroll != "":
		direction := c.Swipe
		invert := false
		if direction == "" {
			// Scrolling down means the content moves up: swipe the other way
			direction = c.Scroll
			invert = true
		}

		w, h := screenBounds(ctx, client, device.UDID)
		x1, y1, x2, y2, err := swipePoints(direction, invert, w, h)
		if err != nil {
			return outputError(globals, "INVALID_FLAGS", err.Error())
		}
		if err := client.Swipe(ctx, device.UDID, x1, y1, x2, y2, c.Duration); err != nil {
			return outputError(globals, "GESTURE_FAILED", err.Error())
		}
		verb := "swipe"
		if invert {
			verb = "scroll"
		}
		return c.report(globals, device, fmt.Sprintf("%s %s", verb, direction))

	default:
		return outputError(globals, "INVALID_FLAGS",
			"one of --swipe, --scroll, --press, or --x/--y/--to-x/--to-y is required")
	}
}

func (c *GestureCmd) report(globals *Globals, device *domain.Device, detail string) error {
	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).WriteResult("gesture", true, map[string]string{
			"udid":   device.UDID,
			"detail": detail,
		})
	}
	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "Performed %s on %s\n", detail, device.Name)
	}
	return nil
}

// screenBounds derives the screen size from the accessibility tree's
// largest visible frame, falling back to a conservative default when the
// tree is unreadable.
func screenBounds(ctx context.Context, client *idb.Client, udid string) (w, h float64) {
	w, h = 390, 844
	elements, err := client.DescribeAll(ctx, udid)
	if err != nil {
		return w, h
	}
	for _, e := range elements {
		if right := e.Frame.X + e.Frame.Width; right > w {
			w = right
		}
		if bottom := e.Frame.Y + e.Frame.Height; bottom > h {
			h = bottom
		}
	}
	return w, h
}

// swipePoints maps a direction onto start/end coordinates across the middle
// 60% of the screen.
func swipePoints(direction string, invert bool, w, h float64) (x1, y1, x2, y2 float64, err error) {
	cx, cy := w/2, h/2
	dx, dy := w*0.3, h*0.3

	switch direction {
	case "up":
		x1, y1, x2, y2 = cx, cy+dy, cx, cy-dy
	case "down":
		x1, y1, x2, y2 = cx, cy-dy, cx, cy+dy
	case "left":
		x1, y1, x2, y2 = cx+dx, cy, cx-dx, cy
	case "right":
		x1, y1, x2, y2 = cx-dx, cy, cx+dx, cy
	default:
		return 0, 0, 0, 0, fmt.Errorf("unknown direction: %s (expected up, down, left, right)", direction)
	}

	if invert {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
	}
	return x1, y1, x2, y2, nil
}
