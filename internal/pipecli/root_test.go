package pipecli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyler14/ios-simulator-skill/internal/config"
	"github.com/skyler14/ios-simulator-skill/internal/pipe"
)

func testGlobals() (*Globals, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Globals{
		Stdout:   &stdout,
		Stderr:   &stderr,
		Config:   config.Default(),
		FlagsSet: map[string]bool{},
	}, &stdout, &stderr
}

func TestBuildOptions(t *testing.T) {
	globals, _, _ := testGlobals()
	c := &CLI{
		IncludePatterns: "*.go, *.md",
		IncludeRegex:    `^internal/`,
		DB:              "SELECT 1",
		Options:         `{"code_relations": true, "code_nf": 5}`,
	}

	opts, err := c.buildOptions(globals)
	require.NoError(t, err)

	assert.Equal(t, []string{"*.go", "*.md"}, opts.IncludePatterns, "patterns are split and trimmed")
	require.NotNil(t, opts.IncludeRegex)
	assert.True(t, opts.IncludeRegex.MatchString("internal/pipe/source.go"))
	assert.Equal(t, "SELECT 1", opts.DBQuery)
	assert.True(t, opts.CodeRelations)
	assert.Equal(t, 5, opts.MaxFiles)
	assert.Equal(t, 50, opts.HubHeadLines, "untouched tunables keep defaults")
}

func TestBuildOptions_InvalidRegex(t *testing.T) {
	globals, _, _ := testGlobals()
	c := &CLI{IncludeRegex: "("}

	_, err := c.buildOptions(globals)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include_regex")
}

func TestBuildOptions_ConfigDefaults(t *testing.T) {
	globals, _, _ := testGlobals()
	globals.Config.Pipe.IncludePatterns = []string{"*.py"}
	globals.Config.Pipe.MaxFileBytes = 1024

	opts, err := (&CLI{}).buildOptions(globals)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.py"}, opts.IncludePatterns)
	assert.Equal(t, int64(1024), opts.MaxFileBytes)

	// Flags override config
	opts, err = (&CLI{IncludePatterns: "*.rs"}).buildOptions(globals)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.rs"}, opts.IncludePatterns)
}

func TestResolveFormat(t *testing.T) {
	globals, _, _ := testGlobals()

	f, err := (&CLI{Format: "json"}).resolveFormat(globals)
	require.NoError(t, err)
	assert.Equal(t, pipe.FormatJSON, f)

	// Config fallback when the flag is absent
	globals.Config.Pipe.Format = "text"
	f, err = (&CLI{}).resolveFormat(globals)
	require.NoError(t, err)
	assert.Equal(t, pipe.FormatText, f)

	_, err = (&CLI{Format: "xml"}).resolveFormat(globals)
	assert.Error(t, err)
}

func TestFail(t *testing.T) {
	globals, _, stderr := testGlobals()

	err := (&CLI{}).fail(globals, "SOURCE_UNREADABLE", "cannot read thing")
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "Error: cannot read thing")

	stderr.Reset()
	err = (&CLI{Format: "json"}).fail(globals, "SOURCE_UNREADABLE", "cannot read thing")
	require.Error(t, err)
	assert.Contains(t, stderr.String(), `"code":"SOURCE_UNREADABLE"`)

	// Config-selected json output uses the machine shape too
	stderr.Reset()
	globals.Config.Pipe.Format = "json"
	err = (&CLI{}).fail(globals, "SOURCE_UNREADABLE", "cannot read thing")
	require.Error(t, err)
	assert.Contains(t, stderr.String(), `"code":"SOURCE_UNREADABLE"`)
}

func TestRun_MissingSource(t *testing.T) {
	globals, _, stderr := testGlobals()

	err := (&CLI{}).Run(globals)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "source argument is required")
}

func TestRun_Version(t *testing.T) {
	globals, stdout, _ := testGlobals()

	require.NoError(t, (&CLI{Version: true}).Run(globals))
	assert.Contains(t, stdout.String(), "pipe version")
}

func TestStdoutIsTTY_NonFile(t *testing.T) {
	assert.False(t, stdoutIsTTY(&bytes.Buffer{}))
}
