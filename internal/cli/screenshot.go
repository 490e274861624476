package cli

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// ScreenshotCmd captures the simulator screen, or compares two captures
type ScreenshotCmd struct {
	Udid string `help:"Simulator UDID or name"`

	Out  string   `help:"Output PNG path (default: screenshot-<timestamp>.png)"`
	Diff []string `help:"Compare two PNG files instead of capturing (exactly two paths)"`
}

// Run executes the screenshot command
func (c *ScreenshotCmd) Run(globals *Globals) error {
	if len(c.Diff) > 0 {
		return c.runDiff(globals)
	}

	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}

	path := c.Out
	if path == "" {
		path = fmt.Sprintf("screenshot-%s.png", time.Now().Format("20060102-150405"))
	}

	if err := mgr.Screenshot(ctx, device.UDID, path); err != nil {
		return outputError(globals, "SCREENSHOT_FAILED", err.Error())
	}

	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).WriteResult("screenshot", true, map[string]string{
			"udid": device.UDID,
			"path": path,
		})
	}
	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "Saved screenshot of %s to %s\n", device.Name, path)
	}
	return nil
}

func (c *ScreenshotCmd) runDiff(globals *Globals) error {
	if len(c.Diff) != 2 {
		return outputError(globals, "INVALID_FLAGS", "--diff requires exactly two PNG paths")
	}

	a, err := loadPNG(c.Diff[0])
	if err != nil {
		return outputError(globals, "DIFF_FAILED", err.Error())
	}
	b, err := loadPNG(c.Diff[1])
	if err != nil {
		return outputError(globals, "DIFF_FAILED", err.Error())
	}

	changed, total, sameSize := diffImages(a, b)
	pct := 0.0
	if total > 0 {
		pct = float64(changed) / float64(total) * 100
	}

	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).WriteResult("screenshot_diff", true, map[string]any{
			"changed_pixels":  changed,
			"total_pixels":    total,
			"changed_percent": pct,
			"same_size":       sameSize,
		})
	}
	if !sameSize {
		fmt.Fprintln(globals.Stdout, "Images differ in size")
		return nil
	}
	fmt.Fprintf(globals.Stdout, "%d of %d pixels changed (%.2f%%)\n", changed, total, pct)
	return nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// diffImages counts pixels that differ between two images of equal size.
// Differently sized images report every pixel of the larger as changed.
func diffImages(a, b image.Image) (changed, total int, sameSize bool) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		n := max(ab.Dx()*ab.Dy(), bb.Dx()*bb.Dy())
		return n, n, false
	}

	total = ab.Dx() * ab.Dy()
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			ar, ag, abl, aa := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			br, bg, bbl, ba := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if ar != br || ag != bg || abl != bbl || aa != ba {
				changed++
			}
		}
	}
	return changed, total, true
}
