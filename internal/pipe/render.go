package pipe

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Format is the output rendering mode
type Format string

const (
	FormatMarkdown Format = "md"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// ParseFormat validates a -f value
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatText, FormatJSON:
		return Format(s), nil
	case "":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format: %s (expected md, text, json)", s)
	}
}

// RenderOptions controls chunk rendering
type RenderOptions struct {
	Format       Format
	TextOnly     bool
	TextOnlyMode string // "raw" keeps code fences
	TTY          bool   // pretty-render markdown for terminals
}

// Render writes chunks to w in the selected format
func Render(w io.Writer, chunks []Chunk, opts RenderOptions) error {
	switch opts.Format {
	case FormatJSON:
		return renderJSON(w, chunks, opts)
	case FormatText:
		return renderText(w, chunks, opts)
	default:
		return renderMarkdown(w, chunks, opts)
	}
}

func renderJSON(w io.Writer, chunks []Chunk, opts RenderOptions) error {
	out := chunks
	if opts.TextOnly {
		out = make([]Chunk, len(chunks))
		for i, c := range chunks {
			c.Content = StripMarkdown(c.Content, opts.TextOnlyMode == "raw")
			out[i] = c
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(out)
}

func renderMarkdown(w io.Writer, chunks []Chunk, opts RenderOptions) error {
	md := assembleMarkdown(chunks)
	if opts.TextOnly {
		md = StripMarkdown(md, opts.TextOnlyMode == "raw")
	}
	_, err := io.WriteString(w, md)
	return err
}

func renderText(w io.Writer, chunks []Chunk, opts RenderOptions) error {
	md := assembleMarkdown(chunks)
	if opts.TextOnly {
		_, err := io.WriteString(w, StripMarkdown(md, opts.TextOnlyMode == "raw"))
		return err
	}

	if opts.TTY {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err == nil {
			if out, err := renderer.Render(md); err == nil {
				_, err := io.WriteString(w, out)
				return err
			}
		}
		// Fall through to plain output when glamour cannot render
	}
	_, err := io.WriteString(w, StripMarkdown(md, true))
	return err
}

// assembleMarkdown joins chunks into one document. Code chunks are
// fenced with a language guess; doc/web/table chunks pass through.
func assembleMarkdown(chunks []Chunk) string {
	var b strings.Builder
	for i, c := range chunks {
		if i > 0 {
			b.WriteString("\n")
		}
		if c.Kind == "code" {
			fmt.Fprintf(&b, "## %s\n\n```%s\n%s\n```\n", c.Source, fenceLanguage(c.Source), strings.TrimRight(c.Content, "\n"))
			continue
		}
		b.WriteString(c.Content)
		if !strings.HasSuffix(c.Content, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

var fenceLanguages = map[string]string{
	".go":    "go",
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".jsx":   "jsx",
	".tsx":   "tsx",
	".rb":    "ruby",
	".rs":    "rust",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".swift": "swift",
	".java":  "java",
	".kt":    "kotlin",
	".sh":    "bash",
	".yaml":  "yaml",
	".yml":   "yaml",
	".json":  "json",
	".sql":   "sql",
	".html":  "html",
	".css":   "css",
}

func fenceLanguage(path string) string {
	return fenceLanguages[strings.ToLower(filepath.Ext(path))]
}
