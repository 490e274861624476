package cli

import (
	"context"
	"strings"

	"github.com/skyler14/ios-simulator-skill/internal/config"
	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// deviceFlags is the common --udid/--all/--type addressing triple shared by
// device-targeting commands. --udid accepts a device name as well; the two
// are alternate addressing modes for the same resolver.
type deviceFlags struct {
	Udid string `help:"Simulator UDID or name ('booted' targets the booted one)"`
	All  bool   `help:"Target all available simulators"`
	Type string `help:"Device class filter: iphone, ipad, watch, tv"`
}

// withDefaults fills unset addressing fields from configured defaults.
// A configured simulator of "booted" is the built-in auto-detect, and the
// set selectors (--all, --type) keep their set semantics instead of being
// narrowed to a configured device. A configured device_class only narrows
// --all.
func (f deviceFlags) withDefaults(d config.DefaultsConfig) deviceFlags {
	sim := strings.TrimSpace(d.Simulator)
	if strings.TrimSpace(f.Udid) == "" && !f.All && f.Type == "" &&
		sim != "" && !strings.EqualFold(sim, "booted") {
		f.Udid = sim
	}
	if f.All && f.Type == "" && d.DeviceClass != "" && d.DeviceClass != "any" {
		f.Type = d.DeviceClass
	}
	return f
}

// resolveOne resolves flags to exactly one device (auto-detects booted)
func resolveOne(ctx context.Context, mgr *simulator.Manager, globals *Globals, f deviceFlags) (*domain.Device, error) {
	if globals.Config != nil {
		f = f.withDefaults(globals.Config.Defaults)
	}
	if strings.TrimSpace(f.Udid) == "" {
		return mgr.FindBootedDevice(ctx)
	}
	return mgr.FindDevice(ctx, f.Udid)
}

// resolveMany resolves flags to a device set for batch operations
func resolveMany(ctx context.Context, mgr *simulator.Manager, globals *Globals, f deviceFlags) ([]domain.Device, error) {
	if globals.Config != nil {
		f = f.withDefaults(globals.Config.Defaults)
	}
	return mgr.SelectDevices(ctx, f.Udid, f.All, domain.ParseDeviceClass(f.Type))
}
