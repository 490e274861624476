package cli

import (
	"github.com/skyler14/ios-simulator-skill/internal/register"
)

// RegisterCmd installs this tool's usage documentation where coding agents
// discover it: a skill directory for Claude Code or a workflow file for
// generic agents.
type RegisterCmd struct {
	Mode string `arg:"" optional:"" default:"help" help:"Registration mode: agent, code, or help"`
	Dir  string `help:"Project directory to register into (default: current directory)"`
}

// Run executes the register command
func (c *RegisterCmd) Run(globals *Globals) error {
	mode, err := register.ParseMode(c.Mode)
	if err != nil {
		return outputError(globals, "INVALID_FLAGS", err.Error())
	}

	dir := c.Dir
	if dir == "" {
		dir = "."
	}

	if err := register.Run(register.IOSSim, mode, dir, globals.Stdout); err != nil {
		return outputError(globals, "REGISTER_FAILED", err.Error())
	}
	return nil
}
