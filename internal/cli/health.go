package cli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/skyler14/ios-simulator-skill/internal/config"
	"github.com/skyler14/ios-simulator-skill/internal/idb"
	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
	"github.com/skyler14/ios-simulator-skill/internal/tmux"
)

// HealthCmd verifies the local toolchain: Xcode, simctl, idb, tmux, and
// the config file. Optional tools degrade to warnings.
type HealthCmd struct{}

type healthCheck struct {
	Name     string `json:"name"`
	OK       bool   `json:"ok"`
	Required bool   `json:"required"`
	Detail   string `json:"detail,omitempty"`
}

// Run executes the health command
func (c *HealthCmd) Run(globals *Globals) error {
	ctx := context.Background()
	var checks []healthCheck

	checks = append(checks, checkXcode(ctx))
	checks = append(checks, checkSimctl(ctx, globals))
	checks = append(checks, checkIDB(globals))
	checks = append(checks, checkTmux())
	checks = append(checks, checkConfig())

	failed := 0
	for _, ch := range checks {
		if !ch.OK && ch.Required {
			failed++
		}
	}

	if globals.JSON {
		w := output.NewJSONWriter(globals.Stdout)
		for _, ch := range checks {
			if err := w.Write(map[string]any{"type": "health_check", "check": ch}); err != nil {
				return err
			}
		}
		if err := w.WriteResult("health", failed == 0, map[string]any{
			"checks": len(checks),
			"failed": failed,
		}); err != nil {
			return err
		}
	} else {
		for _, ch := range checks {
			mark := output.Styles.Success.Render("ok")
			if !ch.OK {
				if ch.Required {
					mark = output.Styles.Danger.Render("FAIL")
				} else {
					mark = output.Styles.Warning.Render("warn")
				}
			}
			fmt.Fprintf(globals.Stdout, "%-4s  %-12s %s\n", mark, ch.Name, ch.Detail)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d required checks failed", failed)
	}
	return nil
}

func checkXcode(ctx context.Context) healthCheck {
	ch := healthCheck{Name: "xcode", Required: true}
	out, err := exec.CommandContext(ctx, "xcode-select", "-p").Output()
	if err != nil {
		ch.Detail = "Xcode not found; run xcode-select --install"
		return ch
	}
	ch.OK = true
	ch.Detail = strings.TrimSpace(string(out))
	return ch
}

func checkSimctl(ctx context.Context, globals *Globals) healthCheck {
	ch := healthCheck{Name: "simctl", Required: true}
	mgr := simulator.NewManager(globals.Log)
	devices, err := mgr.ListDevices(ctx)
	if err != nil {
		ch.Detail = err.Error()
		return ch
	}
	ch.OK = true
	booted := 0
	for _, d := range devices {
		if d.IsBooted() {
			booted++
		}
	}
	ch.Detail = fmt.Sprintf("%d simulators, %d booted", len(devices), booted)
	if len(devices) == 0 {
		ch.Detail = "no simulators; create one with: ios-sim create --device 'iPhone 16'"
	}
	return ch
}

func checkIDB(globals *Globals) healthCheck {
	ch := healthCheck{Name: "idb", Required: false}
	if idb.NewClient(globals.Log).Available() {
		ch.OK = true
		ch.Detail = "installed (UI automation available)"
	} else {
		ch.Detail = "not installed; screen/navigate/gesture need it (brew tap facebook/fb && brew install idb-companion)"
	}
	return ch
}

func checkTmux() healthCheck {
	ch := healthCheck{Name: "tmux", Required: false}
	if tmux.Available() {
		ch.OK = true
		ch.Detail = "installed (detached log sessions available)"
	} else {
		ch.Detail = "not installed; logs --tmux needs it (brew install tmux)"
	}
	return ch
}

func checkConfig() healthCheck {
	ch := healthCheck{Name: "config", Required: false}
	path := config.ConfigFile()
	if path == "" {
		ch.OK = true
		ch.Detail = "no config file (using defaults)"
		return ch
	}
	if _, err := config.LoadFromFile(path); err != nil {
		ch.Detail = fmt.Sprintf("%s: %v", path, err)
		return ch
	}
	ch.OK = true
	ch.Detail = path
	return ch
}
