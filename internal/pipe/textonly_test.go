package pipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdown(t *testing.T) {
	input := "# Title\n\nSome **bold** and _italic_ text with `inline code`.\n\n" +
		"A [link](https://example.com) and an ![image](logo.png).\n\n" +
		"| col | val |\n|---|---|\n| a | 1 |\n\n---\n"

	got := StripMarkdown(input, true)

	assert.Contains(t, got, "Title\n")
	assert.Contains(t, got, "Some bold and italic text with inline code.")
	assert.Contains(t, got, "A link and an .")
	assert.Contains(t, got, "| a | 1 |", "table rows survive, only the rule line goes")
	assert.NotContains(t, got, "#")
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "](")
	assert.NotContains(t, got, "---")
}

func TestStripMarkdown_Fences(t *testing.T) {
	input := "Before\n\n```go\nfunc main() {}\n```\n\nAfter\n"

	kept := StripMarkdown(input, true)
	assert.Contains(t, kept, "func main() {}")
	assert.NotContains(t, kept, "```")

	dropped := StripMarkdown(input, false)
	assert.NotContains(t, dropped, "func main()")
	assert.Contains(t, dropped, "Before")
	assert.Contains(t, dropped, "After")
}

func TestStripMarkdown_CollapsesBlankRuns(t *testing.T) {
	got := StripMarkdown("a\n\n\n\n\nb\n", true)
	assert.Equal(t, "a\n\nb\n", got)
}

func TestStripMarkdown_TrailingNewline(t *testing.T) {
	assert.Equal(t, "plain\n", StripMarkdown("plain", true))
}
