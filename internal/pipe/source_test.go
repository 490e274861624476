package pipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySource(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o644))
	db := filepath.Join(dir, "app.db")
	require.NoError(t, os.WriteFile(db, []byte("stub"), 0o644))

	tests := []struct {
		name     string
		source   string
		kind     SourceKind
		resolved string
	}{
		{"http url", "http://example.com/page", SourceURL, "http://example.com/page"},
		{"https url", "https://example.com", SourceURL, "https://example.com"},
		{"sqlite prefix", "sqlite:///tmp/data.db", SourceDB, "/tmp/data.db"},
		{"db extension", db, SourceDB, db},
		{"directory", dir, SourceDir, dir},
		{"plain file", file, SourceFile, file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, resolved, err := ClassifySource(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.resolved, resolved)
		})
	}
}

func TestClassifySource_Missing(t *testing.T) {
	_, _, err := ClassifySource(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source not found")
}

func TestClassifySource_SqlitePrefixSkipsStat(t *testing.T) {
	// Connection strings are classified by shape, the path need not exist
	kind, resolved, err := ClassifySource("sqlite://does/not/exist.db")
	require.NoError(t, err)
	assert.Equal(t, SourceDB, kind)
	assert.Equal(t, "does/not/exist.db", resolved)
}
