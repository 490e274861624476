package cli

import (
	"io"
	"os"

	"github.com/skyler14/ios-simulator-skill/internal/config"
	"github.com/skyler14/ios-simulator-skill/internal/logging"
	"go.uber.org/zap"
)

// CLI is the root command structure for the simulator toolkit
type CLI struct {
	// Global flags
	JSON    bool `help:"Machine-readable JSON output (for CI/CD and agents)"`
	Verbose bool `short:"v" help:"Detailed output and debug diagnostics"`
	Quiet   bool `short:"q" help:"Suppress non-essential output"`

	// Device lifecycle
	List     ListCmd     `cmd:"" help:"List available simulators"`
	Boot     BootCmd     `cmd:"" help:"Boot simulators"`
	Shutdown ShutdownCmd `cmd:"" help:"Shut down simulators"`
	Create   CreateCmd   `cmd:"" help:"Create a new simulator"`
	Delete   DeleteCmd   `cmd:"" help:"Delete simulators"`
	Erase    EraseCmd    `cmd:"" help:"Factory reset simulators"`

	// App lifecycle
	Apps    AppsCmd    `cmd:"" help:"List installed apps on a simulator"`
	App     AppCmd     `cmd:"" help:"App lifecycle: launch, terminate, install, uninstall"`
	Privacy PrivacyCmd `cmd:"" help:"Grant or revoke app permissions"`

	// Navigation & interaction
	Screen   ScreenCmd   `cmd:"" help:"Map accessibility elements of the current screen"`
	Navigate NavigateCmd `cmd:"" help:"Find and interact with elements semantically"`
	Gesture  GestureCmd  `cmd:"" help:"Swipes, scrolls, and long presses"`
	Keyboard KeyboardCmd `cmd:"" help:"Type text or press hardware buttons"`
	Audit    AuditCmd    `cmd:"" help:"Audit the current screen for accessibility problems"`

	// Build & test
	Build BuildCmd `cmd:"" help:"Build or test an Xcode project on a simulator"`

	// Device state & testing
	Clipboard  ClipboardCmd  `cmd:"" help:"Get or set the simulator pasteboard"`
	Statusbar  StatusbarCmd  `cmd:"" help:"Override status bar appearance"`
	Push       PushCmd       `cmd:"" help:"Send a test push notification"`
	Screenshot ScreenshotCmd `cmd:"" help:"Capture or compare screenshots"`
	State      StateCmd      `cmd:"" help:"Capture a debugging snapshot"`
	Logs       LogsCmd       `cmd:"" help:"Query or follow simulator logs"`
	Record     RecordCmd     `cmd:"" help:"Record the screen to a video file"`

	// Environment & docs
	Health   HealthCmd   `cmd:"" help:"Check system requirements and configuration"`
	Pick     PickCmd     `cmd:"" help:"Interactively pick a simulator or app"`
	Register RegisterCmd `cmd:"" help:"Register this toolkit with an agent platform"`
	Help     HelpCmd     `cmd:"" help:"Show comprehensive documentation (use --json for agents)"`
	Examples ExamplesCmd `cmd:"" help:"Show usage examples"`
	Schema   SchemaCmd   `cmd:"" help:"Output JSON Schema for output types"`
	Config   ConfigCmd   `cmd:"" help:"Show or manage configuration"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// Globals holds shared state for all commands
type Globals struct {
	JSON     bool
	Verbose  bool
	Quiet    bool
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *config.Config
	Log      *zap.Logger
	FlagsSet map[string]bool
}

// NewGlobals creates a Globals instance from CLI flags with config fallbacks
func NewGlobals(cli *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		JSON:    cli.JSON,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}

	// Apply config values if CLI flags weren't explicitly set
	if cfg != nil {
		if !cli.JSON && cfg.Format == "json" {
			g.JSON = true
		}
		if !cli.Quiet && cfg.Quiet {
			g.Quiet = cfg.Quiet
		}
		if !cli.Verbose && cfg.Verbose {
			g.Verbose = cfg.Verbose
		}
	}

	g.Log = logging.New(g.Verbose)
	return g
}

// FlagProvided reports whether a flag was explicitly given on the command line
func (g *Globals) FlagProvided(name string) bool {
	return g.FlagsSet[name]
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.JSON {
		io.WriteString(globals.Stdout, `{"type":"version","version":"`+Version+`","commit":"`+Commit+`"}`+"\n")
	} else {
		io.WriteString(globals.Stdout, "ios-sim version "+Version+" ("+Commit+")\n")
	}
	return nil
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
