package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// AppsCmd lists installed apps on a simulator
type AppsCmd struct {
	Udid     string `help:"Simulator UDID or name"`
	UserOnly bool   `help:"Show only user-installed apps (exclude system apps)"`
}

// Run executes the apps command
func (c *AppsCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}

	// listapps only works against a booted device
	if !device.IsBooted() {
		return outputErrorHint(globals, "DEVICE_NOT_BOOTED",
			fmt.Sprintf("device %s is not booted", device.Name),
			fmt.Sprintf("boot it with: ios-sim boot --udid %s", device.UDID))
	}

	apps, err := mgr.ListApps(ctx, device.UDID)
	if err != nil {
		return outputError(globals, "LIST_APPS_FAILED", err.Error())
	}

	if c.UserOnly {
		var userApps []domain.App
		for _, app := range apps {
			if app.Type == domain.AppTypeUser {
				userApps = append(userApps, app)
			}
		}
		apps = userApps
	}

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].BundleID < apps[j].BundleID
	})

	if globals.JSON {
		encoder := json.NewEncoder(globals.Stdout)
		for _, app := range apps {
			entry := map[string]interface{}{
				"type":      "app",
				"bundle_id": app.BundleID,
				"name":      app.Name,
				"version":   app.Version,
				"app_type":  app.Type,
			}
			if app.BuildNumber != "" {
				entry["build_number"] = app.BuildNumber
			}
			if app.Path != "" {
				entry["path"] = app.Path
			}
			if err := encoder.Encode(entry); err != nil {
				return err
			}
		}

		return encoder.Encode(map[string]interface{}{
			"type":   "apps_summary",
			"device": device.Name,
			"udid":   device.UDID,
			"total":  len(apps),
		})
	}

	// Text output
	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "Installed apps on %s (%s)\n\n", device.Name, device.UDID)
	}

	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, []string{app.BundleID, app.Name, app.Version, string(app.Type)})
	}
	if err := output.Table(globals.Stdout, []string{"BUNDLE ID", "NAME", "VERSION", "TYPE"}, rows); err != nil {
		return err
	}

	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "\nTotal: %d apps\n", len(apps))
	}
	return nil
}
