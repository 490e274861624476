package pipe

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under dir, with contents keyed by relative path
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func sources(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Source
	}
	return out
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"main.go":   "package main\n",
		"README.md": "# readme\n",
	})
	e := NewEngine(DefaultOptions(), nil, nil)

	chunks, err := e.ExtractFile(filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "code", chunks[0].Kind)
	assert.Equal(t, "package main\n", chunks[0].Content)

	chunks, err = e.ExtractFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "doc", chunks[0].Kind)
}

func TestExtractFile_Binary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x7f, 'E', 'L', 'F', 0x00, 0x01}, 0o644))

	e := NewEngine(DefaultOptions(), nil, nil)
	_, err := e.ExtractFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary")
}

func TestExtractDir(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.go":                 "package a\n",
		"b.py":                 "print('b')\n",
		"docs/guide.md":        "# guide\n",
		"vendor/dep.go":        "package dep\n",
		"node_modules/x.js":    "module.exports = 1\n",
		".hidden/secret.go":    "package secret\n",
		".dotfile":             "hidden\n",
		"assets/logo.bin":      "\x00\x01\x02",
		"__pycache__/a.pyc":    "cached",
		"sub/nested/deep.rs":   "fn main() {}\n",
	})

	e := NewEngine(DefaultOptions(), nil, nil)
	chunks, err := e.ExtractDir(context.Background(), dir)
	require.NoError(t, err)

	got := sources(chunks)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.go"),
		filepath.Join(dir, "b.py"),
		filepath.Join(dir, "docs/guide.md"),
		filepath.Join(dir, "sub/nested/deep.rs"),
	}, got, "pruned dirs, hidden files, and binaries are skipped; order is by path")
}

func TestExtractDir_IncludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.go":        "package a\n",
		"b.py":        "print('b')\n",
		"sub/c.go":    "package c\n",
		"sub/d.txt":   "text\n",
	})

	opts := DefaultOptions()
	opts.IncludePatterns = []string{"*.go"}
	e := NewEngine(opts, nil, nil)

	chunks, err := e.ExtractDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.go"),
		filepath.Join(dir, "sub/c.go"),
	}, sources(chunks), "glob matches the base name even in subdirectories")
}

func TestExtractDir_IncludeRegex(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.go":      "package a\n",
		"sub/c.go":  "package c\n",
		"sub/d.py":  "print('d')\n",
	})

	opts := DefaultOptions()
	opts.IncludeRegex = regexp.MustCompile(`^sub/`)
	e := NewEngine(opts, nil, nil)

	chunks, err := e.ExtractDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "sub/c.go"),
		filepath.Join(dir, "sub/d.py"),
	}, sources(chunks), "regex matches the root-relative path")
}

func TestExtractDir_MaxFileBytes(t *testing.T) {
	dir := t.TempDir()
	big := make([]byte, 128)
	for i := range big {
		big[i] = 'x'
	}
	writeTree(t, dir, map[string]string{
		"small.go": "package small\n",
		"big.go":   string(big),
	})

	opts := DefaultOptions()
	opts.MaxFileBytes = 64
	e := NewEngine(opts, nil, nil)

	chunks, err := e.ExtractDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "small.go")}, sources(chunks))
}

func TestPathIncluded_NoFilters(t *testing.T) {
	e := NewEngine(DefaultOptions(), nil, nil)
	assert.True(t, e.pathIncluded("/root", "/root/anything/at/all.xyz"))
}

func TestIsBinary(t *testing.T) {
	assert.False(t, isBinary([]byte("plain text\n")))
	assert.False(t, isBinary(nil))
	assert.True(t, isBinary([]byte{'a', 0x00, 'b'}))
}

func TestChunkKind(t *testing.T) {
	assert.Equal(t, "doc", chunkKind("README.md"))
	assert.Equal(t, "doc", chunkKind("NOTES.TXT"))
	assert.Equal(t, "code", chunkKind("main.go"))
	assert.Equal(t, "code", chunkKind("Makefile"))
}
