package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/skyler14/ios-simulator-skill/internal/cli"
	"github.com/skyler14/ios-simulator-skill/internal/config"
	"github.com/skyler14/ios-simulator-skill/internal/register"
)

const quickStart = `ios-sim - iOS Simulator automation for AI agents

START HERE:
  ios-sim list                          See available simulators
  ios-sim boot --udid "iPhone 16 Pro"   Boot one
  ios-sim screen                        See what is on screen
  ios-sim navigate --find-text "Sign In" --tap

Other useful commands:
  ios-sim apps                          List installed apps
  ios-sim logs --bundle com.example.app Recent app logs
  ios-sim health                        Check your setup
  ios-sim help --json                   Full docs for AI agents
  ios-sim register                      Install docs for coding agents
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// `ios-sim --register [mode]` is the documented entry point for agent
	// platforms; handle it before kong sees the unknown flag.
	if os.Args[1] == "--register" {
		mode := "help"
		if len(os.Args) > 2 {
			mode = os.Args[2]
		}
		m, err := register.ParseMode(mode)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := register.Run(register.IOSSim, m, ".", os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	ctx := kong.Parse(&c,
		kong.Name("ios-sim"),
		kong.Description("iOS Simulator automation toolkit\n\nSTART HERE: ios-sim list, then ios-sim boot\n\nAI agents: run 'ios-sim help --json' for complete documentation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)

	globals := cli.NewGlobals(&c, cfg)

	// Record which flags were explicitly provided so commands can
	// distinguish CLI overrides from config defaults.
	flagsSet := map[string]bool{}
	for _, p := range ctx.Path {
		if p.Flag != nil {
			flagsSet[p.Flag.Name] = true
		}
	}
	globals.FlagsSet = flagsSet

	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}
