// Package pipecli is the command surface for the pipe extraction tool.
// Unlike the simulator CLI it is a flat surface: one positional source
// plus flags, no subcommands.
package pipecli

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/samber/lo"
	"github.com/skyler14/ios-simulator-skill/internal/config"
	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/pipe"
	"github.com/skyler14/ios-simulator-skill/internal/register"
	"go.uber.org/zap"
)

// CLI is the root command for pipe
type CLI struct {
	Source string `arg:"" optional:"" help:"File, directory, URL, or sqlite database to extract"`

	Options         string `help:"JSON options: {\"code_relations\": true, \"code_n1\": 50, \"code_n2\": 20, \"code_nf\": 20, \"code_nt\": 10}"`
	IncludePatterns string `name:"include_patterns" help:"Comma-separated globs to include, e.g. '*.go,*.md'"`
	IncludeRegex    string `name:"include_regex" help:"Only include paths matching this regex"`
	TextOnly        string `name:"text_only" help:"Strip markdown structure; mode 'raw' keeps code fences"`
	DB              string `help:"SQL query to run against a database source (empty lists tables; use --db='...' if the query is misread as a path)"`
	Format          string `short:"f" help:"Output format: md, text, json"`

	Verbose  bool   `short:"v" help:"Debug diagnostics on stderr"`
	Register string `help:"Register with an agent platform: agent, code, or help" hidden:""`
	Version  bool   `help:"Show version"`
}

// Globals carries shared state into Run
type Globals struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *config.Config
	Log      *zap.Logger
	FlagsSet map[string]bool
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)

// Run executes an extraction
func (c *CLI) Run(globals *Globals) error {
	if c.Version {
		fmt.Fprintf(globals.Stdout, "pipe version %s (%s)\n", Version, Commit)
		return nil
	}
	if c.Register != "" {
		mode, err := register.ParseMode(c.Register)
		if err != nil {
			return c.fail(globals, "INVALID_FLAGS", err.Error())
		}
		return register.Run(register.Pipe, mode, ".", globals.Stdout)
	}
	if c.Source == "" {
		return c.fail(globals, "INVALID_FLAGS", "a source argument is required (file, directory, URL, or database)")
	}

	opts, err := c.buildOptions(globals)
	if err != nil {
		return c.fail(globals, "INVALID_FLAGS", err.Error())
	}

	format, err := c.resolveFormat(globals)
	if err != nil {
		return c.fail(globals, "INVALID_FLAGS", err.Error())
	}
	if c.TextOnly != "" && c.TextOnly != "default" && c.TextOnly != "raw" {
		return c.fail(globals, "INVALID_FLAGS", fmt.Sprintf("unknown text_only mode: %s (expected default or raw)", c.TextOnly))
	}

	warn := func(msg string) {
		fmt.Fprintf(globals.Stderr, "Warning: %s\n", msg)
	}
	engine := pipe.NewEngine(opts, globals.Log, warn)

	ctx := context.Background()
	chunks, err := c.extract(ctx, globals, engine)
	if err != nil {
		return err
	}

	renderOpts := pipe.RenderOptions{
		Format:       format,
		TextOnly:     globals.FlagsSet["text_only"],
		TextOnlyMode: c.TextOnly,
		TTY:          stdoutIsTTY(globals.Stdout),
	}
	return pipe.Render(globals.Stdout, chunks, renderOpts)
}

func (c *CLI) extract(ctx context.Context, globals *Globals, engine *pipe.Engine) ([]pipe.Chunk, error) {
	kind, target, err := pipe.ClassifySource(c.Source)
	if err != nil {
		return nil, c.fail(globals, "SOURCE_UNREADABLE", err.Error())
	}

	// An explicit --db flag forces DB interpretation for paths whose
	// extension does not give them away
	if globals.FlagsSet["db"] && kind == pipe.SourceFile {
		kind = pipe.SourceDB
	}

	var chunks []pipe.Chunk
	switch kind {
	case pipe.SourceURL:
		chunks, err = engine.ExtractURL(ctx, target)
		if err != nil {
			return nil, c.fail(globals, "FETCH_FAILED", err.Error())
		}
	case pipe.SourceDB:
		chunks, err = engine.ExtractDB(ctx, target)
		if err != nil {
			return nil, c.fail(globals, "DB_QUERY_FAILED", err.Error())
		}
	case pipe.SourceDir:
		chunks, err = engine.ExtractDir(ctx, target)
		if err != nil {
			return nil, c.fail(globals, "SOURCE_UNREADABLE", err.Error())
		}
	default:
		chunks, err = engine.ExtractFile(target)
		if err != nil {
			return nil, c.fail(globals, "SOURCE_UNREADABLE", err.Error())
		}
	}

	if len(chunks) == 0 {
		fmt.Fprintln(globals.Stderr, "Warning: no extractable content found")
	}
	return chunks, nil
}

func (c *CLI) buildOptions(globals *Globals) (pipe.Options, error) {
	opts := pipe.DefaultOptions()
	if cfg := globals.Config; cfg != nil {
		if cfg.Pipe.MaxFileBytes > 0 {
			opts.MaxFileBytes = cfg.Pipe.MaxFileBytes
		}
		opts.IncludePatterns = cfg.Pipe.IncludePatterns
	}

	if c.IncludePatterns != "" {
		opts.IncludePatterns = lo.Map(strings.Split(c.IncludePatterns, ","),
			func(s string, _ int) string { return strings.TrimSpace(s) })
	}
	if c.IncludeRegex != "" {
		re, err := regexp.Compile(c.IncludeRegex)
		if err != nil {
			return opts, fmt.Errorf("invalid --include_regex: %v", err)
		}
		opts.IncludeRegex = re
	}
	opts.DBQuery = c.DB

	if err := pipe.ParseOptionsJSON(&opts, c.Options); err != nil {
		return opts, err
	}
	return opts, nil
}

func (c *CLI) resolveFormat(globals *Globals) (pipe.Format, error) {
	f := c.Format
	if f == "" && globals.Config != nil {
		f = globals.Config.Pipe.Format
	}
	return pipe.ParseFormat(f)
}

// fail emits a structured error and returns a non-nil error for the exit
// code. JSON output mode gets the machine shape, whether it was selected
// by flag or by config.
func (c *CLI) fail(globals *Globals, code, message string) error {
	format := c.Format
	if format == "" && globals.Config != nil {
		format = globals.Config.Pipe.Format
	}
	if format == "json" {
		_ = output.NewJSONWriter(globals.Stderr).WriteError(code, message, "")
	} else {
		fmt.Fprintf(globals.Stderr, "Error: %s\n", message)
	}
	return fmt.Errorf("%s: %s", code, message)
}

func stdoutIsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
