package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// PrivacyCmd grants or revokes app permissions
type PrivacyCmd struct {
	Udid     string `help:"Simulator UDID or name"`
	BundleID string `name:"bundle-id" help:"App bundle identifier (omit to affect all apps)"`
	Grant    string `help:"Comma-separated permissions to grant (camera,location,...)"`
	Revoke   string `help:"Comma-separated permissions to revoke"`
	Reset    string `help:"Comma-separated permissions to reset to unprompted state"`
	ListOnly bool   `name:"list" help:"List known permission services"`
}

// Run executes the privacy command
func (c *PrivacyCmd) Run(globals *Globals) error {
	if c.ListOnly {
		return c.listServices(globals)
	}

	if c.Grant == "" && c.Revoke == "" && c.Reset == "" {
		return outputError(globals, "INVALID_FLAGS",
			"one of --grant, --revoke, --reset, or --list is required")
	}

	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}
	if !device.IsBooted() {
		return outputErrorHint(globals, "DEVICE_NOT_BOOTED",
			fmt.Sprintf("simulator %s is not booted", device.Name),
			fmt.Sprintf("boot it with: ios-sim boot --udid %s", device.UDID))
	}

	type step struct {
		action   simulator.PrivacyAction
		services string
	}
	for _, s := range []step{
		{simulator.PrivacyGrant, c.Grant},
		{simulator.PrivacyRevoke, c.Revoke},
		{simulator.PrivacyReset, c.Reset},
	} {
		if s.services == "" {
			continue
		}
		services, err := parseServices(s.services)
		if err != nil {
			return outputErrorHint(globals, "UNKNOWN_SERVICE", err.Error(),
				"run 'ios-sim privacy --list' for known services")
		}
		if err := mgr.SetPrivacyBatch(ctx, device.UDID, s.action, services, c.BundleID); err != nil {
			return outputError(globals, "PRIVACY_FAILED", err.Error())
		}
		c.report(globals, device, string(s.action), services)
	}
	return nil
}

func (c *PrivacyCmd) report(globals *Globals, device *domain.Device, action string, services []domain.PrivacyService) {
	if globals.JSON {
		names := make([]string, len(services))
		for i, s := range services {
			names[i] = string(s)
		}
		output.NewJSONWriter(globals.Stdout).WriteResult("privacy."+action, true, map[string]interface{}{
			"udid":      device.UDID,
			"bundle_id": c.BundleID,
			"services":  names,
		})
		return
	}
	if !globals.Quiet {
		target := c.BundleID
		if target == "" {
			target = "all apps"
		}
		for _, s := range services {
			fmt.Fprintf(globals.Stdout, "%s %s for %s\n", pastTense(action), s, target)
		}
	}
}

func (c *PrivacyCmd) listServices(globals *Globals) error {
	if globals.JSON {
		names := make([]string, len(domain.KnownPrivacyServices))
		for i, s := range domain.KnownPrivacyServices {
			names[i] = string(s)
		}
		return output.NewJSONWriter(globals.Stdout).WriteResult("privacy.list", true, map[string]interface{}{
			"services": names,
		})
	}
	for _, s := range domain.KnownPrivacyServices {
		fmt.Fprintln(globals.Stdout, s)
	}
	return nil
}

// parseServices validates a comma-separated permission list
func parseServices(csv string) ([]domain.PrivacyService, error) {
	var services []domain.PrivacyService
	for _, part := range strings.Split(csv, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !domain.IsKnownPrivacyService(name) {
			return nil, fmt.Errorf("unknown privacy service: %s", name)
		}
		services = append(services, domain.PrivacyService(name))
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("no services given")
	}
	return services, nil
}

func pastTense(action string) string {
	switch action {
	case "grant":
		return "Granted"
	case "revoke":
		return "Revoked"
	case "reset":
		return "Reset"
	default:
		return action
	}
}
