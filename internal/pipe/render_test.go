package pipe

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		ok       bool
	}{
		{"md", FormatMarkdown, true},
		{"text", FormatText, true},
		{"json", FormatJSON, true},
		{"", FormatMarkdown, true},
		{"xml", "", false},
	}

	for _, tt := range tests {
		f, err := ParseFormat(tt.input)
		if tt.ok {
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.expected, f)
		} else {
			assert.Error(t, err, "input %q", tt.input)
		}
	}
}

func renderChunks() []Chunk {
	return []Chunk{
		{Source: "README.md", Kind: "doc", Content: "# Project\n\nIntro text.\n"},
		{Source: "main.go", Kind: "code", Content: "package main\n"},
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, renderChunks(), RenderOptions{Format: FormatJSON}))

	var decoded []Chunk
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "README.md", decoded[0].Source)
	assert.Equal(t, "doc", decoded[0].Kind)
	assert.Equal(t, "package main\n", decoded[1].Content)
}

func TestRender_JSONNoHTMLEscaping(t *testing.T) {
	chunks := []Chunk{{Source: "a.go", Kind: "code", Content: "if a < b && b > c {}\n"}}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, chunks, RenderOptions{Format: FormatJSON}))

	assert.Contains(t, buf.String(), "a < b && b > c")
	assert.NotContains(t, buf.String(), `<`)
}

func TestRender_JSONTextOnly(t *testing.T) {
	chunks := []Chunk{{Source: "doc.md", Kind: "doc", Content: "# Heading\n\n**bold** text\n"}}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, chunks, RenderOptions{Format: FormatJSON, TextOnly: true}))

	var decoded []Chunk
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Heading\n\nbold text\n", decoded[0].Content)
}

func TestRender_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, renderChunks(), RenderOptions{Format: FormatMarkdown}))

	out := buf.String()
	assert.Contains(t, out, "# Project")
	assert.Contains(t, out, "## main.go")
	assert.Contains(t, out, "```go\npackage main\n```", "code chunks are fenced with a language guess")
}

func TestRender_TextNonTTY(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, renderChunks(), RenderOptions{Format: FormatText}))

	out := buf.String()
	assert.Contains(t, out, "Project")
	assert.NotContains(t, out, "# Project", "headings are stripped for plain text")
	assert.Contains(t, out, "package main", "code body survives text output")
	assert.NotContains(t, out, "```")
}

func TestRender_TextOnlyRawKeepsCode(t *testing.T) {
	var buf bytes.Buffer
	opts := RenderOptions{Format: FormatText, TextOnly: true, TextOnlyMode: "raw"}
	require.NoError(t, Render(&buf, renderChunks(), opts))
	assert.Contains(t, buf.String(), "package main")

	buf.Reset()
	opts.TextOnlyMode = "default"
	require.NoError(t, Render(&buf, renderChunks(), opts))
	assert.NotContains(t, buf.String(), "package main", "default mode drops fenced code")
}

func TestFenceLanguage(t *testing.T) {
	assert.Equal(t, "go", fenceLanguage("cmd/main.go"))
	assert.Equal(t, "python", fenceLanguage("script.PY"))
	assert.Equal(t, "", fenceLanguage("Makefile"))
}
