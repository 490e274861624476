package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
	"github.com/skyler14/ios-simulator-skill/internal/xcodebuild"
)

// BuildCmd builds or tests an Xcode project against a simulator
type BuildCmd struct {
	Udid string `help:"Simulator UDID or name (destination device)"`

	Project       string `help:"Path to an .xcodeproj"`
	Workspace     string `help:"Path to an .xcworkspace (wins over --project)"`
	Scheme        string `help:"Scheme to build" required:""`
	Configuration string `help:"Build configuration (Debug, Release)"`
	Test          bool   `help:"Run tests instead of building"`
}

// Run executes the build command
func (c *BuildCmd) Run(globals *Globals) error {
	ctx := context.Background()

	runner := xcodebuild.NewRunner(globals.Log)
	if !runner.Available() {
		return outputErrorHint(globals, "XCODEBUILD_MISSING",
			"xcodebuild is not installed",
			"install Xcode or run: xcode-select --install")
	}

	req := xcodebuild.Request{
		Project:       c.Project,
		Workspace:     c.Workspace,
		Scheme:        c.Scheme,
		Configuration: c.Configuration,
		Test:          c.Test,
	}

	// Tests need a concrete destination; plain builds can let xcodebuild
	// pick one when no device was named.
	if c.Udid != "" || c.Test {
		mgr := simulator.NewManager(globals.Log)
		device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
		if err != nil {
			return deviceError(globals, err)
		}
		req.DeviceUDID = device.UDID
	}

	var progress io.Writer
	if globals.Verbose && !globals.JSON {
		progress = globals.Stderr
	}

	result, err := runner.Run(ctx, req, progress)
	if err != nil {
		return outputError(globals, "BUILD_FAILED", err.Error())
	}

	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).WriteResult(result.Action, result.Succeeded, result)
	}

	if !globals.Quiet {
		c.printSummary(globals.Stdout, result)
	}
	if !result.Succeeded {
		return fmt.Errorf("%s failed", result.Action)
	}
	return nil
}

func (c *BuildCmd) printSummary(w io.Writer, result *xcodebuild.Result) {
	status := "succeeded"
	if !result.Succeeded {
		status = "failed"
	}
	fmt.Fprintf(w, "%s %s", capitalize(result.Action), status)
	if result.Action == "test" && result.TestsRun > 0 {
		fmt.Fprintf(w, ": %d tests, %d failures", result.TestsRun, result.TestFailures)
	}
	if result.Warnings > 0 {
		fmt.Fprintf(w, " (%d warnings)", result.Warnings)
	}
	fmt.Fprintln(w)

	for _, msg := range result.Errors {
		fmt.Fprintf(w, "  error: %s\n", msg)
	}
}
