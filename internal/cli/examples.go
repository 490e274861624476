package cli

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExamplesCmd shows usage examples for ios-sim commands
type ExamplesCmd struct {
	Command string `arg:"" optional:"" help:"Show examples for a specific command (boot, navigate, logs, ...)"`
}

// Example represents a single usage example
type Example struct {
	Command     string `json:"command"`
	Description string `json:"description"`
	When        string `json:"when,omitempty"`
}

// CommandExamples holds examples for a single command
type CommandExamples struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Examples    []Example `json:"examples"`
}

// WorkflowExample shows a multi-step workflow
type WorkflowExample struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	When        string   `json:"when"`
	Steps       []string `json:"steps"`
}

var commandExamples = map[string]CommandExamples{
	"boot": {
		Name:        "boot",
		Description: "Boot a simulator and wait for it to be ready",
		Examples: []Example{
			{
				Command:     `ios-sim boot --udid "iPhone 16 Pro"`,
				Description: "Boot by name, blocking until booted",
			},
			{
				Command:     `ios-sim boot --udid "iPhone 16 Pro" --no-wait`,
				Description: "Kick off the boot and return immediately",
				When:        "Scripts that do other setup while the simulator boots",
			},
		},
	},
	"list": {
		Name:        "list",
		Description: "List simulators",
		Examples: []Example{
			{
				Command:     "ios-sim list --booted",
				Description: "Show only running simulators",
			},
			{
				Command:     "ios-sim --json list --type iphone",
				Description: "Machine-readable iPhone inventory",
				When:        "Agents picking a target device",
			},
		},
	},
	"navigate": {
		Name:        "navigate",
		Description: "Find and interact with on-screen elements",
		Examples: []Example{
			{
				Command:     `ios-sim navigate --find-text "Sign In" --tap`,
				Description: "Tap the button labeled Sign In",
			},
			{
				Command:     `ios-sim navigate --find-type textfield --enter-text "user@example.com"`,
				Description: "Focus the first text field and type into it",
			},
			{
				Command:     `ios-sim navigate --find-text "Delete" --index 1 --tap`,
				Description: "Tap the second matching element",
				When:        "Multiple elements share a label",
			},
		},
	},
	"logs": {
		Name:        "logs",
		Description: "Query or stream the unified log",
		Examples: []Example{
			{
				Command:     `ios-sim logs --bundle com.example.myapp --since 10m --level error`,
				Description: "Recent errors from one app",
			},
			{
				Command:     `ios-sim logs --bundle com.example.myapp --follow`,
				Description: "Live stream until ctrl-c",
			},
			{
				Command:     `ios-sim logs --bundle com.example.myapp --tmux`,
				Description: "Host the stream in a detached tmux session",
				When:        "Long sessions where the agent does other work",
			},
		},
	},
	"screen": {
		Name:        "screen",
		Description: "Inspect the accessibility element tree",
		Examples: []Example{
			{
				Command:     "ios-sim screen",
				Description: "List visible elements with labels and types",
			},
			{
				Command:     "ios-sim --json screen --type button",
				Description: "Machine-readable list of buttons",
			},
		},
	},
	"privacy": {
		Name:        "privacy",
		Description: "Manage app permissions",
		Examples: []Example{
			{
				Command:     `ios-sim privacy --bundle com.example.myapp --grant photos,camera`,
				Description: "Pre-authorize permissions before a test run",
				When:        "Avoiding permission dialogs in automated flows",
			},
		},
	},
	"screenshot": {
		Name:        "screenshot",
		Description: "Capture and compare screenshots",
		Examples: []Example{
			{
				Command:     "ios-sim screenshot --out before.png",
				Description: "Capture to a named file",
			},
			{
				Command:     "ios-sim screenshot --diff before.png after.png",
				Description: "Report how many pixels changed",
				When:        "Verifying a UI action had a visible effect",
			},
		},
	},
	"build": {
		Name:        "build",
		Description: "Build or test an Xcode project",
		Examples: []Example{
			{
				Command:     "ios-sim build --project MyApp.xcodeproj --scheme MyApp",
				Description: "Build the scheme for the simulator",
			},
			{
				Command:     `ios-sim --json build --workspace MyApp.xcworkspace --scheme MyApp --test --udid "iPhone 16 Pro"`,
				Description: "Run tests on a named simulator with a machine-readable summary",
				When:        "CI pipelines",
			},
		},
	},
	"audit": {
		Name:        "audit",
		Description: "Check the current screen for accessibility problems",
		Examples: []Example{
			{
				Command:     "ios-sim audit",
				Description: "Report unlabeled controls, small tap targets, and duplicate labels",
			},
			{
				Command:     "ios-sim audit --strict",
				Description: "Fail on warnings too",
				When:        "Enforcing accessibility in CI",
			},
		},
	},
}

var workflowExamples = []WorkflowExample{
	{
		Name:        "verify-ui-action",
		Description: "Tap a button and confirm the screen changed",
		When:        "Agent-driven UI verification",
		Steps: []string{
			"ios-sim screenshot --out before.png",
			`ios-sim navigate --find-text "Submit" --tap`,
			"ios-sim screenshot --out after.png",
			"ios-sim screenshot --diff before.png after.png",
		},
	},
	{
		Name:        "debug-app-launch",
		Description: "Launch an app with console capture and watch for errors",
		When:        "Diagnosing startup crashes",
		Steps: []string{
			`ios-sim boot --udid "iPhone 16 Pro"`,
			"ios-sim app --launch com.example.myapp --console",
			"ios-sim logs --bundle com.example.myapp --since 2m --level error",
		},
	},
	{
		Name:        "clean-screenshots",
		Description: "Produce marketing-ready captures",
		When:        "App Store screenshots",
		Steps: []string{
			"ios-sim statusbar --demo",
			"ios-sim screenshot --out hero.png",
			"ios-sim statusbar --clear",
		},
	},
}

// Run executes the examples command
func (c *ExamplesCmd) Run(globals *Globals) error {
	if globals.JSON {
		out := map[string]any{
			"type":      "examples",
			"version":   Version,
			"workflows": workflowExamples,
		}
		if c.Command != "" {
			ce, ok := commandExamples[strings.ToLower(c.Command)]
			if !ok {
				return outputError(globals, "UNKNOWN_COMMAND",
					fmt.Sprintf("no examples for command: %s", c.Command))
			}
			out["commands"] = []CommandExamples{ce}
		} else {
			all := make([]CommandExamples, 0, len(commandExamples))
			for _, name := range exampleOrder() {
				all = append(all, commandExamples[name])
			}
			out["commands"] = all
		}
		encoder := json.NewEncoder(globals.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}

	if c.Command != "" {
		ce, ok := commandExamples[strings.ToLower(c.Command)]
		if !ok {
			return outputError(globals, "UNKNOWN_COMMAND",
				fmt.Sprintf("no examples for command: %s", c.Command))
		}
		printCommandExamples(globals, ce)
		return nil
	}

	for _, name := range exampleOrder() {
		printCommandExamples(globals, commandExamples[name])
	}

	fmt.Fprintln(globals.Stdout, "Workflows:")
	for _, wf := range workflowExamples {
		fmt.Fprintf(globals.Stdout, "\n  %s - %s\n", wf.Name, wf.Description)
		for _, step := range wf.Steps {
			fmt.Fprintf(globals.Stdout, "    $ %s\n", step)
		}
	}
	return nil
}

func exampleOrder() []string {
	return []string{"list", "boot", "screen", "navigate", "logs", "privacy", "screenshot", "build", "audit"}
}

func printCommandExamples(globals *Globals, ce CommandExamples) {
	fmt.Fprintf(globals.Stdout, "%s - %s\n", ce.Name, ce.Description)
	for _, ex := range ce.Examples {
		fmt.Fprintf(globals.Stdout, "  $ %s\n", ex.Command)
		fmt.Fprintf(globals.Stdout, "    %s\n", ex.Description)
		if ex.When != "" {
			fmt.Fprintf(globals.Stdout, "    when: %s\n", ex.When)
		}
	}
	fmt.Fprintln(globals.Stdout)
}
