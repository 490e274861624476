// Package register emits or writes integration snippets for host agent
// platforms. Both binaries expose the same --register {agent|code|help}
// convention.
package register

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Tool describes one registerable binary
type Tool struct {
	Name         string // binary name, e.g. "ios-sim"
	SkillName    string // skill directory name under .claude/skills/
	WorkflowFile string // workflow filename under .agent/workflows/
	Skill        string // SKILL.md markdown content
	Guide        string // optional CLAUDE.md companion content
	Workflow     string // workflow markdown content
}

// Mode selects the registration target platform
type Mode string

const (
	ModeCode   Mode = "code"   // Claude Code skill directory
	ModeAgent  Mode = "agent"  // Antigravity/agent workflow file
	ModeHelp   Mode = "help"   // print the registration guide
	ModeManual Mode = ""       // print markdown for copy-paste
)

// ParseMode validates a user-supplied registration mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "code":
		return ModeCode, nil
	case "agent":
		return ModeAgent, nil
	case "help":
		return ModeHelp, nil
	case "":
		return ModeManual, nil
	default:
		return "", fmt.Errorf("unknown registration mode: %s (expected agent, code, or help)", s)
	}
}

// Run performs registration for a tool. targetDir is the project root the
// snippet is written into; stdout receives confirmation or markdown.
func Run(t Tool, mode Mode, targetDir string, stdout io.Writer) error {
	switch mode {
	case ModeCode:
		return registerCode(t, targetDir, stdout)
	case ModeAgent:
		return registerAgent(t, targetDir, stdout)
	case ModeHelp:
		fmt.Fprint(stdout, helpText(t))
		return nil
	default:
		// Manual copy-paste output
		fmt.Fprint(stdout, t.Workflow)
		return nil
	}
}

// registerCode writes a Claude Code skill directory
func registerCode(t Tool, targetDir string, stdout io.Writer) error {
	skillDir := filepath.Join(targetDir, ".claude", "skills", t.SkillName)
	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	skillFile := filepath.Join(skillDir, "SKILL.md")
	if err := os.WriteFile(skillFile, []byte(t.Skill), 0o644); err != nil {
		return fmt.Errorf("failed to write SKILL.md: %w", err)
	}
	fmt.Fprintf(stdout, "Created: %s\n", skillFile)

	if t.Guide != "" {
		guideFile := filepath.Join(skillDir, "CLAUDE.md")
		if err := os.WriteFile(guideFile, []byte(t.Guide), 0o644); err != nil {
			return fmt.Errorf("failed to write CLAUDE.md: %w", err)
		}
		fmt.Fprintf(stdout, "Created: %s\n", guideFile)
	}

	fmt.Fprintf(stdout, "\nClaude Code skill registered at: %s\n", skillDir)
	fmt.Fprintln(stdout, "Restart Claude Code to load the skill.")
	return nil
}

// registerAgent writes an agent workflow file
func registerAgent(t Tool, targetDir string, stdout io.Writer) error {
	workflowDir := filepath.Join(targetDir, ".agent", "workflows")
	if err := os.MkdirAll(workflowDir, 0o755); err != nil {
		return fmt.Errorf("failed to create workflow directory: %w", err)
	}

	workflowFile := filepath.Join(workflowDir, t.WorkflowFile)
	if err := os.WriteFile(workflowFile, []byte(t.Workflow), 0o644); err != nil {
		return fmt.Errorf("failed to write workflow: %w", err)
	}
	fmt.Fprintf(stdout, "Created workflow: %s\n", workflowFile)
	return nil
}

func helpText(t Tool) string {
	return fmt.Sprintf(`%s - Self-Registration Guide

Register this tool with AI development platforms:

1. Claude Code: run '%s --register code'
   - Creates .claude/skills/%s/ with SKILL.md (and CLAUDE.md when the
     tool ships one)
   - Skill loads automatically after restart

2. Antigravity/Gemini: run '%s --register agent'
   - Creates .agent/workflows/%s
   - Workflow becomes available immediately

3. Manual/Chat: run '%s --register'
   - Outputs markdown to copy-paste into chat interfaces

Run from the project root you want to register into.
`, t.Name, t.Name, t.SkillName, t.Name, t.WorkflowFile, t.Name)
}
