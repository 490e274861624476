package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/skyler14/ios-simulator-skill/internal/config"
	"github.com/skyler14/ios-simulator-skill/internal/logging"
	"github.com/skyler14/ios-simulator-skill/internal/pipecli"
	"github.com/skyler14/ios-simulator-skill/internal/register"
)

const quickStart = `pipe - content extraction for AI agents

Extract readable content from a file, directory, URL, or sqlite database:

  pipe src/                             Whole directory as markdown
  pipe src/ --options '{"code_relations": true}'
                                        Dependency-ranked code summary
  pipe README.md --text_only            Plain text, markdown stripped
  pipe https://example.com/article      Web page as markdown
  pipe data.db --db "SELECT * FROM users LIMIT 10"
                                        Query results as a table
  pipe src/ -f json                     Chunk objects for programmatic use

Filters:
  --include_patterns '*.go,*.md'        Globs (comma-separated)
  --include_regex 'internal/'           Regex on relative paths

Register with your agent platform:
  pipe --register agent | code | help
`

func main() {
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// `pipe --register [mode]` mirrors the ios-sim convention; resolve it
	// before kong parses the hidden flag strictly.
	if os.Args[1] == "--register" {
		mode := "help"
		if len(os.Args) > 2 {
			mode = os.Args[2]
		}
		m, err := register.ParseMode(mode)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := register.Run(register.Pipe, m, ".", os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c pipecli.CLI

	parser, err := kong.New(&c,
		kong.Name("pipe"),
		kong.Description("Extract readable content from files, directories, URLs, and databases"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, err := parser.Parse(normalizeArgs(os.Args[1:]))
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	flagsSet := map[string]bool{}
	for _, p := range ctx.Path {
		if p.Flag != nil {
			flagsSet[p.Flag.Name] = true
		}
	}

	globals := &pipecli.Globals{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Config:   cfg,
		Log:      logging.New(c.Verbose),
		FlagsSet: flagsSet,
	}

	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}

// normalizeArgs handles the documented optional-value flags that kong
// cannot express directly: bare `--text_only` means the default mode, and
// bare `--db` means "list tables".
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--text_only":
			if i+1 < len(args) && (args[i+1] == "raw" || args[i+1] == "default") {
				out = append(out, "--text_only="+args[i+1])
				i++
			} else {
				out = append(out, "--text_only=default")
			}
		case "--db":
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") && looksLikeQuery(args[i+1]) {
				out = append(out, "--db="+args[i+1])
				i++
			} else {
				out = append(out, "--db=")
			}
		default:
			out = append(out, arg)
		}
	}
	return out
}

// queryKeywords are the statement openers recognized when deciding whether
// the argument after a bare --db is a query or a positional source path.
// `--db='...'` bypasses the heuristic entirely.
var queryKeywords = []string{
	"SELECT", "WITH", "PRAGMA", "EXPLAIN",
	"INSERT", "UPDATE", "DELETE", "REPLACE",
	"CREATE", "DROP", "ALTER", "VACUUM", "ANALYZE",
}

// looksLikeQuery distinguishes a SQL query argument from a following
// positional source path.
func looksLikeQuery(s string) bool {
	head := strings.ToUpper(strings.TrimSpace(s))
	for _, kw := range queryKeywords {
		if strings.HasPrefix(head, kw+" ") || head == kw {
			return true
		}
	}
	return false
}
