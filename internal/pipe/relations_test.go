package pipe

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relationsTree is a small python project where util.py is the hub:
// both main.py and worker.py import it, and main.py also imports worker.
func relationsTree(t *testing.T) string {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"main.py":   "import util\nimport worker\n\nprint('main')\n",
		"worker.py": "import util\n\nprint('worker')\n",
		"util.py":   "print('util')\n",
		"README.md": "# project\n",
	})
	return dir
}

func relationsEngine(opts Options, warn func(string)) *Engine {
	opts.CodeRelations = true
	return NewEngine(opts, nil, warn)
}

func TestExtractRelations(t *testing.T) {
	dir := relationsTree(t)
	e := relationsEngine(DefaultOptions(), nil)

	chunks, err := e.ExtractDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, chunks, 4, "summary plus three code files")

	summary := chunks[0]
	assert.Equal(t, "doc", summary.Kind)
	assert.Contains(t, summary.Content, "| file | imported by | imports |")
	assert.Contains(t, summary.Content, "| util.py | 2 | 0 |")
	assert.Contains(t, summary.Content, "| main.py | 0 | 2 |")
	assert.Contains(t, summary.Content, "| worker.py | 1 | 1 |")
	assert.NotContains(t, summary.Content, "README.md", "doc files stay out of the graph")

	// Ranking: util (fan-in 2), worker (fan-in 1), main (fan-in 0)
	assert.Equal(t, filepath.Join(dir, "util.py"), chunks[1].Source)
	assert.Equal(t, filepath.Join(dir, "worker.py"), chunks[2].Source)
	assert.Equal(t, filepath.Join(dir, "main.py"), chunks[3].Source)
}

func TestExtractRelations_HubExcerpt(t *testing.T) {
	dir := t.TempDir()

	var hub strings.Builder
	for i := 1; i <= 40; i++ {
		fmt.Fprintf(&hub, "line %d\n", i)
	}
	writeTree(t, dir, map[string]string{
		"hub.py":  hub.String(),
		"user.py": "import hub\n",
	})

	opts := DefaultOptions()
	opts.HubHeadLines = 5
	opts.HubTailLines = 3
	e := relationsEngine(opts, nil)

	chunks, err := e.ExtractDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	excerpt := chunks[1].Content
	assert.Contains(t, excerpt, "line 1\n")
	assert.Contains(t, excerpt, "line 5\n")
	assert.Contains(t, excerpt, "lines omitted")
	assert.Contains(t, excerpt, "line 40")
	assert.NotContains(t, excerpt, "line 20\n", "middle of the hub is elided")
}

func TestExtractRelations_MaxFilesCap(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{}
	for i := 0; i < 6; i++ {
		files[fmt.Sprintf("f%d.py", i)] = "print('x')\n"
	}
	writeTree(t, dir, files)

	opts := DefaultOptions()
	opts.MaxFiles = 3
	e := relationsEngine(opts, nil)

	chunks, err := e.ExtractDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, chunks, 4, "summary plus MaxFiles excerpts")
	assert.Contains(t, chunks[0].Content, "6 code files scanned, showing 3 (0 hubs).")
}

func TestExtractRelations_WarnsOnIncludeFilters(t *testing.T) {
	dir := relationsTree(t)

	var warnings []string
	opts := DefaultOptions()
	opts.IncludePatterns = []string{"*.py"}
	e := relationsEngine(opts, func(msg string) { warnings = append(warnings, msg) })

	_, err := e.ExtractDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "code_relations")
}

func TestExtractRelations_NoCodeFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"README.md": "# docs only\n"})

	e := relationsEngine(DefaultOptions(), nil)
	_, err := e.ExtractDir(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no code files")
}

func TestNormalizeRef(t *testing.T) {
	tests := []struct {
		ref      string
		expected string
	}{
		{"util", "util"},
		{"pkg.sub.mod", "pkg/sub/mod"},
		{"crate::io::reader", "crate/io/reader"},
		{"./local", "local"},
		{"../../shared/thing.js", "shared/thing"},
		{"lib/parse.h", "lib/parse"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeRef(tt.ref), "ref %q", tt.ref)
	}
}

func TestHubCutoff(t *testing.T) {
	nodes := []*fileNode{
		{path: "a", fanIn: 5},
		{path: "b", fanIn: 3},
		{path: "c", fanIn: 1},
		{path: "d", fanIn: 0},
	}

	assert.Equal(t, 1, hubCutoff(nodes, 4), "quarter of four is one hub")
	assert.Equal(t, 3, hubCutoff(nodes, 12), "fan-in zero ends the hub run")
	assert.Equal(t, 0, hubCutoff([]*fileNode{{path: "x"}}, 1), "no imports, no hubs")
}

func TestExcerptHead(t *testing.T) {
	content := "a\nb\nc\nd"
	assert.Equal(t, content, excerptHead(content, 10), "short content passes through")
	assert.Equal(t, "a\nb\n... (2 more lines)", excerptHead(content, 2))
}
