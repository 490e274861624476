package cli

import (
	"encoding/json"
	"fmt"
)

// HelpCmd provides comprehensive documentation
type HelpCmd struct {
	JSON bool `help:"Output complete documentation as JSON for AI agents"`
}

// HelpOutput is the complete documentation structure
type HelpOutput struct {
	Type          string                  `json:"type"`
	Version       string                  `json:"version"`
	Purpose       string                  `json:"purpose"`
	AgentGuidance string                  `json:"agent_guidance"`
	QuickStart    map[string]string       `json:"quick_start"`
	Commands      map[string]CommandDoc   `json:"commands"`
	ErrorCodes    map[string]ErrorCodeDoc `json:"error_codes"`
	Workflows     []WorkflowExample       `json:"workflows"`
}

// CommandDoc documents a single command
type CommandDoc struct {
	Description     string   `json:"description"`
	Usage           string   `json:"usage"`
	RelatedCommands []string `json:"related_commands,omitempty"`
}

// ErrorCodeDoc documents an error code
type ErrorCodeDoc struct {
	Description string `json:"description"`
	Recovery    string `json:"recovery"`
}

// Run executes the help command
func (c *HelpCmd) Run(globals *Globals) error {
	if !c.JSON && !globals.JSON {
		fmt.Fprintln(globals.Stdout, "Usage: ios-sim help --json")
		fmt.Fprintln(globals.Stdout)
		fmt.Fprintln(globals.Stdout, "Output complete ios-sim documentation as JSON for AI agents.")
		fmt.Fprintln(globals.Stdout)
		fmt.Fprintln(globals.Stdout, "For human-readable help, use: ios-sim --help")
		fmt.Fprintln(globals.Stdout, "For usage examples, use: ios-sim examples")
		return nil
	}

	doc := buildDocumentation()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(globals.Stdout, string(data))
	return err
}

func buildDocumentation() *HelpOutput {
	return &HelpOutput{
		Type:          "documentation",
		Version:       Version,
		Purpose:       "iOS Simulator automation CLI for AI agents: device lifecycle, app management, UI interaction, and log access with structured JSON output.",
		AgentGuidance: "Start with 'ios-sim list' to find a device, 'ios-sim boot' to start it, then 'ios-sim screen' to see what is on screen before interacting. Pass --json as a global flag for machine-readable output on every command. UI commands (screen, navigate, gesture, keyboard) need idb installed; check with 'ios-sim health'.",
		QuickStart: map[string]string{
			"list_simulators": "ios-sim list",
			"boot":            `ios-sim boot --udid "iPhone 16 Pro"`,
			"list_apps":       "ios-sim apps",
			"launch_app":      "ios-sim app --launch com.example.myapp",
			"see_screen":      "ios-sim screen",
			"tap_button":      `ios-sim navigate --find-text "Sign In" --tap`,
			"type_text":       `ios-sim keyboard --text "hello"`,
			"screenshot":      "ios-sim screenshot --out shot.png",
			"recent_errors":   "ios-sim logs --bundle com.example.myapp --level error",
			"check_setup":     "ios-sim health",
		},
		Commands: map[string]CommandDoc{
			"list":       {Description: "List simulators with state and runtime", Usage: "ios-sim list [--booted] [--type iphone]", RelatedCommands: []string{"boot", "pick"}},
			"boot":       {Description: "Boot a simulator and wait until ready", Usage: "ios-sim boot [--udid NAME|UDID] [--no-wait]", RelatedCommands: []string{"shutdown", "list"}},
			"shutdown":   {Description: "Shut down simulators", Usage: "ios-sim shutdown [--udid NAME|UDID] [--all]"},
			"create":     {Description: "Create a new simulator", Usage: "ios-sim create --device 'iPhone 16 Pro' [--runtime iOS-18-0] [--boot] | --list-types | --list-runtimes"},
			"delete":     {Description: "Delete a simulator (requires --yes)", Usage: "ios-sim delete --udid UDID --yes"},
			"erase":      {Description: "Factory-reset a simulator (requires --yes)", Usage: "ios-sim erase --udid UDID --yes"},
			"apps":       {Description: "List installed apps", Usage: "ios-sim apps [--user-only]", RelatedCommands: []string{"app"}},
			"app":        {Description: "Launch, terminate, install, uninstall, or deep-link into an app", Usage: "ios-sim app --launch BUNDLE [--console] | --open-url myapp://path", RelatedCommands: []string{"apps", "logs"}},
			"privacy":    {Description: "Grant, revoke, or reset app permissions", Usage: "ios-sim privacy --bundle BUNDLE --grant photos,camera"},
			"screen":     {Description: "Show the accessibility element tree", Usage: "ios-sim screen [--type button] [--hidden]", RelatedCommands: []string{"navigate", "gesture"}},
			"navigate":   {Description: "Find elements and tap or type into them", Usage: "ios-sim navigate --find-text TEXT [--tap | --enter-text TEXT]", RelatedCommands: []string{"screen", "keyboard"}},
			"gesture":    {Description: "Swipe, scroll, or long press", Usage: "ios-sim gesture --swipe up | --press --x 100 --y 200"},
			"keyboard":   {Description: "Type text, press special keys, or press hardware buttons", Usage: "ios-sim keyboard --text TEXT | --key return | --button home"},
			"audit":      {Description: "Check the current screen for accessibility problems", Usage: "ios-sim audit [--strict]", RelatedCommands: []string{"screen"}},
			"build":      {Description: "Build or test an Xcode project on a simulator", Usage: "ios-sim build --project App.xcodeproj --scheme App [--test]"},
			"clipboard":  {Description: "Read or write the simulator pasteboard", Usage: "ios-sim clipboard [--set TEXT]"},
			"statusbar":  {Description: "Override the status bar for clean screenshots", Usage: "ios-sim statusbar --demo | --clear"},
			"push":       {Description: "Deliver a simulated push notification", Usage: "ios-sim push --bundle BUNDLE --title T --body B"},
			"screenshot": {Description: "Capture the screen or diff two captures", Usage: "ios-sim screenshot [--out FILE] | --diff A.png B.png"},
			"state":      {Description: "Snapshot screenshot, element tree, and device info", Usage: "ios-sim state [--out DIR]"},
			"logs":       {Description: "Query or stream the unified log", Usage: "ios-sim logs [--bundle BUNDLE] [--since 5m] [--follow] [--tmux]"},
			"record":     {Description: "Record the screen to mp4", Usage: "ios-sim record [--duration 10s] [--out FILE]"},
			"health":     {Description: "Verify Xcode, simctl, idb, tmux, and config", Usage: "ios-sim health"},
			"pick":       {Description: "Interactively pick a simulator or app", Usage: "ios-sim pick simulator|app"},
			"register":   {Description: "Install usage docs for coding agents", Usage: "ios-sim register agent|code"},
			"config":     {Description: "Show or generate configuration", Usage: "ios-sim config [show|path|generate]"},
			"schema":     {Description: "JSON Schema for --json output lines", Usage: "ios-sim schema"},
			"examples":   {Description: "Usage examples and workflows", Usage: "ios-sim examples [COMMAND]"},
		},
		ErrorCodes: map[string]ErrorCodeDoc{
			"DEVICE_NOT_FOUND":      {Description: "No simulator matched the given name or UDID", Recovery: "Run 'ios-sim list' to see available simulators"},
			"NO_BOOTED_DEVICE":      {Description: "A command defaulted to the booted simulator but none is running", Recovery: "Boot one with 'ios-sim boot --udid NAME'"},
			"MULTIPLE_BOOTED":       {Description: "More than one simulator is booted and the target is ambiguous", Recovery: "Pass --udid to pick one"},
			"IDB_MISSING":           {Description: "A UI command needs idb, which is not installed", Recovery: "brew tap facebook/fb && brew install idb-companion"},
			"XCODEBUILD_MISSING":    {Description: "The build command needs xcodebuild, which is not installed", Recovery: "Install Xcode or run 'xcode-select --install'"},
			"TMUX_MISSING":          {Description: "logs --tmux needs tmux, which is not installed", Recovery: "brew install tmux"},
			"ELEMENT_NOT_FOUND":     {Description: "No on-screen element matched the query", Recovery: "Run 'ios-sim screen' to see what is on screen"},
			"CONFIRMATION_REQUIRED": {Description: "A destructive command ran without --yes in a non-interactive context", Recovery: "Re-run with --yes"},
			"INVALID_FLAGS":         {Description: "The flag combination is not valid", Recovery: "Check the command usage with --help"},
		},
		Workflows: workflowExamples,
	}
}
