package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "bare text_only gets the default mode",
			args:     []string{"README.md", "--text_only"},
			expected: []string{"README.md", "--text_only=default"},
		},
		{
			name:     "text_only raw consumes the mode",
			args:     []string{"README.md", "--text_only", "raw"},
			expected: []string{"README.md", "--text_only=raw"},
		},
		{
			name:     "text_only before the source leaves the source alone",
			args:     []string{"--text_only", "README.md"},
			expected: []string{"--text_only=default", "README.md"},
		},
		{
			name:     "db with a query consumes it",
			args:     []string{"app.db", "--db", "SELECT * FROM users"},
			expected: []string{"app.db", "--db=SELECT * FROM users"},
		},
		{
			name:     "bare db means list tables",
			args:     []string{"app.db", "--db"},
			expected: []string{"app.db", "--db="},
		},
		{
			name:     "db followed by a path stays bare",
			args:     []string{"--db", "app.db"},
			expected: []string{"--db=", "app.db"},
		},
		{
			name:     "db followed by another flag stays bare",
			args:     []string{"app.db", "--db", "-f", "json"},
			expected: []string{"app.db", "--db=", "-f", "json"},
		},
		{
			name:     "explicit equals form passes through",
			args:     []string{"--text_only=raw", "--db=PRAGMA table_info(users)"},
			expected: []string{"--text_only=raw", "--db=PRAGMA table_info(users)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeArgs(tt.args))
		})
	}
}

func TestLooksLikeQuery(t *testing.T) {
	assert.True(t, looksLikeQuery("SELECT * FROM users"))
	assert.True(t, looksLikeQuery("  select name from t"))
	assert.True(t, looksLikeQuery("WITH cte AS (SELECT 1) SELECT * FROM cte"))
	assert.True(t, looksLikeQuery("PRAGMA table_info(users)"))
	assert.True(t, looksLikeQuery("EXPLAIN SELECT 1"))
	assert.True(t, looksLikeQuery("INSERT INTO users (name) VALUES ('x')"))
	assert.True(t, looksLikeQuery("UPDATE users SET name = 'x'"))
	assert.True(t, looksLikeQuery("delete from users"))
	assert.True(t, looksLikeQuery("CREATE TABLE t (id INTEGER)"))
	assert.True(t, looksLikeQuery("DROP TABLE t"))
	assert.True(t, looksLikeQuery("VACUUM"))

	assert.False(t, looksLikeQuery("app.db"))
	assert.False(t, looksLikeQuery("updates.md"))
	assert.False(t, looksLikeQuery("src/"))
	assert.False(t, looksLikeQuery("selections.txt"))
}
