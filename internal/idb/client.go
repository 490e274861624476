// Package idb wraps Meta's idb companion CLI for accessibility-tree
// inspection and UI interaction. idb is optional at runtime; callers must
// check Available before interactive commands.
package idb

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Client shells out to the idb binary
type Client struct {
	idbPath string
	log     *zap.Logger
}

// NewClient creates a new idb client
func NewClient(log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		idbPath: "idb",
		log:     log,
	}
}

// Available reports whether the idb binary is installed
func (c *Client) Available() bool {
	_, err := exec.LookPath(c.idbPath)
	return err == nil
}

// run executes an idb subcommand and returns stdout
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	c.log.Debug("running idb", zap.Strings("args", args))
	cmd := exec.CommandContext(ctx, c.idbPath, args...)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("idb %s failed: %s", args[0], strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("idb %s failed: %w", args[0], err)
	}
	return out, nil
}

// DescribeAll returns the accessibility tree of the current screen
func (c *Client) DescribeAll(ctx context.Context, udid string) ([]domain.Element, error) {
	out, err := c.run(ctx, "ui", "describe-all", "--udid", udid, "--json")
	if err != nil {
		return nil, err
	}
	return parseElements(out), nil
}

// parseElements converts idb's describe-all JSON into domain elements.
// idb emits either a JSON array or one object per line depending on
// version, so both shapes are handled.
func parseElements(out []byte) []domain.Element {
	parsed := gjson.ParseBytes(out)

	var nodes []gjson.Result
	if parsed.IsArray() {
		nodes = parsed.Array()
	} else {
		for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
			if res := gjson.Parse(line); res.IsObject() {
				nodes = append(nodes, res)
			}
		}
	}

	elements := make([]domain.Element, 0, len(nodes))
	for _, n := range nodes {
		frame := n.Get("frame")
		el := domain.Element{
			Type:       domain.ElementType(n.Get("type").String()),
			Label:      n.Get("AXLabel").String(),
			Value:      n.Get("AXValue").String(),
			Identifier: n.Get("AXUniqueId").String(),
			Frame: domain.Frame{
				X:      frame.Get("x").Float(),
				Y:      frame.Get("y").Float(),
				Width:  frame.Get("width").Float(),
				Height: frame.Get("height").Float(),
			},
			Enabled: n.Get("enabled").Bool(),
			Visible: frame.Get("width").Float() > 0 && frame.Get("height").Float() > 0,
		}
		elements = append(elements, el)
	}
	return elements
}

// Tap taps the screen at a point
func (c *Client) Tap(ctx context.Context, udid string, x, y float64) error {
	_, err := c.run(ctx, "ui", "tap", "--udid", udid,
		fmt.Sprintf("%.0f", x), fmt.Sprintf("%.0f", y))
	return err
}

// Text types text into the focused element
func (c *Client) Text(ctx context.Context, udid, text string) error {
	_, err := c.run(ctx, "ui", "text", "--udid", udid, text)
	return err
}

// Swipe performs a swipe between two points over duration seconds
func (c *Client) Swipe(ctx context.Context, udid string, x1, y1, x2, y2, duration float64) error {
	args := []string{"ui", "swipe", "--udid", udid}
	if duration > 0 {
		args = append(args, "--duration", fmt.Sprintf("%.2f", duration))
	}
	args = append(args,
		fmt.Sprintf("%.0f", x1), fmt.Sprintf("%.0f", y1),
		fmt.Sprintf("%.0f", x2), fmt.Sprintf("%.0f", y2))
	_, err := c.run(ctx, args...)
	return err
}

// LongPress holds a tap at a point for duration seconds
func (c *Client) LongPress(ctx context.Context, udid string, x, y, duration float64) error {
	_, err := c.run(ctx, "ui", "tap", "--udid", udid,
		"--duration", fmt.Sprintf("%.2f", duration),
		fmt.Sprintf("%.0f", x), fmt.Sprintf("%.0f", y))
	return err
}

// HardwareButton presses a hardware button (HOME, LOCK, SIRI, ...)
func (c *Client) HardwareButton(ctx context.Context, udid, button string) error {
	_, err := c.run(ctx, "ui", "button", "--udid", udid, strings.ToUpper(button))
	return err
}

// KeyEvent sends a raw keycode to the simulator
func (c *Client) KeyEvent(ctx context.Context, udid string, keycode int) error {
	_, err := c.run(ctx, "ui", "key", "--udid", udid, fmt.Sprintf("%d", keycode))
	return err
}
