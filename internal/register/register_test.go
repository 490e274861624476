package register

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		ok       bool
	}{
		{"code", ModeCode, true},
		{"agent", ModeAgent, true},
		{"help", ModeHelp, true},
		{"", ModeManual, true},
		{"cursor", "", false},
	}

	for _, tt := range tests {
		mode, err := ParseMode(tt.input)
		if tt.ok {
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.expected, mode)
		} else {
			assert.Error(t, err, "input %q", tt.input)
		}
	}
}

func TestRun_Code(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, Run(IOSSim, ModeCode, dir, &out))

	skillFile := filepath.Join(dir, ".claude", "skills", IOSSim.SkillName, "SKILL.md")
	content, err := os.ReadFile(skillFile)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(content), "---\n"), "SKILL.md starts with frontmatter")
	assert.Contains(t, string(content), "ios-sim")
	assert.Contains(t, out.String(), skillFile)

	// The simulator toolkit ships a CLAUDE.md companion alongside SKILL.md
	guideFile := filepath.Join(dir, ".claude", "skills", IOSSim.SkillName, "CLAUDE.md")
	guide, err := os.ReadFile(guideFile)
	require.NoError(t, err)
	assert.Contains(t, string(guide), "ios-sim")
	assert.Contains(t, out.String(), guideFile)
}

func TestRun_Code_NoGuide(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, Run(Pipe, ModeCode, dir, &out))

	_, err := os.Stat(filepath.Join(dir, ".claude", "skills", Pipe.SkillName, "SKILL.md"))
	require.NoError(t, err)

	// pipe has no companion guide, so none is written
	_, err = os.Stat(filepath.Join(dir, ".claude", "skills", Pipe.SkillName, "CLAUDE.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Agent(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, Run(Pipe, ModeAgent, dir, &out))

	workflowFile := filepath.Join(dir, ".agent", "workflows", Pipe.WorkflowFile)
	content, err := os.ReadFile(workflowFile)
	require.NoError(t, err)

	assert.Contains(t, string(content), "pipe")
	// Workflow content carries exactly one frontmatter block
	assert.Equal(t, 1, strings.Count(string(content), "\n---\n\n#"), "one frontmatter close before the title")
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(IOSSim, ModeHelp, t.TempDir(), &out))

	assert.Contains(t, out.String(), "--register code")
	assert.Contains(t, out.String(), ".claude/skills/")
}

func TestRun_Manual(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(IOSSim, ModeManual, t.TempDir(), &out))
	assert.Equal(t, IOSSim.Workflow, out.String())
}
