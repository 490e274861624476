package pipe

import (
	"regexp"
	"strings"
)

var (
	headingRe   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphasisRe  = regexp.MustCompile(`(\*\*|__|\*|_)([^*_]+)(\*\*|__|\*|_)`)
	linkRe      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	imageRe     = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	inlineRe    = regexp.MustCompile("`([^`]*)`")
	tableRuleRe = regexp.MustCompile(`(?m)^\s*\|?[-:| ]+\|?\s*$`)
	hruleRe     = regexp.MustCompile(`(?m)^(---+|\*\*\*+|___+)\s*$`)
)

// StripMarkdown removes markdown structure from content, leaving plain
// text. keepCode controls fenced block handling: true keeps the code
// body (fences removed), false drops fenced blocks entirely.
func StripMarkdown(content string, keepCode bool) string {
	lines := strings.Split(content, "\n")
	var out []string
	inFence := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			if keepCode {
				out = append(out, line)
			}
			continue
		}
		out = append(out, line)
	}

	text := strings.Join(out, "\n")
	text = imageRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = headingRe.ReplaceAllString(text, "")
	text = emphasisRe.ReplaceAllString(text, "$2")
	text = inlineRe.ReplaceAllString(text, "$1")
	text = tableRuleRe.ReplaceAllString(text, "")
	text = hruleRe.ReplaceAllString(text, "")

	// Collapse the blank-line runs left by removed structure
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text) + "\n"
}
