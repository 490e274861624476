package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/skyler14/ios-simulator-skill/internal/config"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.JSON {
		out := map[string]any{
			"type":     "config",
			"format":   cfg.Format,
			"quiet":    cfg.Quiet,
			"verbose":  cfg.Verbose,
			"defaults": cfg.Defaults,
			"pipe":     cfg.Pipe,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(out)
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet:   %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %v\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Defaults:")
	fmt.Fprintf(globals.Stdout, "  simulator:    %s\n", cfg.Defaults.Simulator)
	fmt.Fprintf(globals.Stdout, "  device_class: %s\n", cfg.Defaults.DeviceClass)
	fmt.Fprintf(globals.Stdout, "  bundle_id:    %s\n", cfg.Defaults.BundleID)
	fmt.Fprintf(globals.Stdout, "  since:        %s\n", cfg.Defaults.Since)
	fmt.Fprintf(globals.Stdout, "  limit:        %d\n", cfg.Defaults.Limit)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Pipe:")
	fmt.Fprintf(globals.Stdout, "  format:         %s\n", cfg.Pipe.Format)
	fmt.Fprintf(globals.Stdout, "  max_file_bytes: %d\n", cfg.Pipe.MaxFileBytes)
	if len(cfg.Pipe.IncludePatterns) > 0 {
		fmt.Fprintf(globals.Stdout, "  include_patterns: %v\n", cfg.Pipe.IncludePatterns)
	}

	if path := config.ConfigFile(); path != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", path)
	}
	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.JSON {
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(map[string]any{
			"type":   "config_path",
			"path":   path,
			"exists": path != "",
		})
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found.")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Searched locations:")
		fmt.Fprintln(globals.Stdout, "  ./.ios-sim.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.ios-sim.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/ios-sim/config.yaml")
		fmt.Fprintln(globals.Stdout, "  /etc/ios-sim/config.yaml")
		return nil
	}
	fmt.Fprintln(globals.Stdout, path)
	return nil
}

// ConfigGenerateCmd generates a sample config file
type ConfigGenerateCmd struct {
	Output string `short:"o" default:".ios-sim.yaml" help:"Output file path"`
	Force  bool   `help:"Overwrite existing file"`
}

const sampleConfig = `# ios-sim configuration
# Search order: ./.ios-sim.yaml, ~/.ios-sim.yaml,
# ~/.config/ios-sim/config.yaml, /etc/ios-sim/config.yaml

# Output format: text or json
format: text

# Suppress informational output
quiet: false

# Enable debug logging
verbose: false

defaults:
  # Default simulator: "booted", a name, or a UDID
  simulator: booted

  # Device family for --all operations: any, iphone, ipad, watch, tv
  device_class: any

  # Default app bundle for log filtering
  # bundle_id: com.example.myapp

  # Log query window and entry cap
  since: 5m
  limit: 1000

pipe:
  # Extraction output format: md, text, or json
  format: md

  # Skip files larger than this many bytes
  max_file_bytes: 2097152

  # Only extract files matching these globs
  # include_patterns:
  #   - "*.go"
  #   - "*.md"
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	if !c.Force {
		if _, err := os.Stat(c.Output); err == nil {
			return outputErrorHint(globals, "FILE_EXISTS",
				fmt.Sprintf("%s already exists", c.Output),
				"use --force to overwrite")
		}
	}

	if err := os.WriteFile(c.Output, []byte(sampleConfig), 0o644); err != nil {
		return outputError(globals, "WRITE_FAILED", err.Error())
	}

	if globals.JSON {
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(map[string]any{
			"type": "config_generated",
			"path": c.Output,
		})
	}
	fmt.Fprintf(globals.Stdout, "Generated %s\n", c.Output)
	return nil
}
