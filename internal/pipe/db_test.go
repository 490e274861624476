package pipe

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, email TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE sessions (token TEXT, user_id INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (name, email) VALUES ('alice', 'alice@example.com'), ('bob', NULL)`)
	require.NoError(t, err)
	return path
}

func TestExtractDB_DescribeTables(t *testing.T) {
	path := fixtureDB(t)
	e := NewEngine(DefaultOptions(), nil, nil)

	chunks, err := e.ExtractDB(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	c := chunks[0]
	assert.Equal(t, "table", c.Kind)
	assert.Contains(t, c.Content, "## sessions (0 rows)")
	assert.Contains(t, c.Content, "## users (2 rows)")
	assert.Contains(t, c.Content, "CREATE TABLE users")
	assert.Contains(t, c.Content, "```sql")
}

func TestExtractDB_Query(t *testing.T) {
	path := fixtureDB(t)
	opts := DefaultOptions()
	opts.DBQuery = "SELECT name, email FROM users ORDER BY name"
	e := NewEngine(opts, nil, nil)

	chunks, err := e.ExtractDB(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	c := chunks[0]
	assert.Contains(t, c.Content, "Query: `SELECT name, email FROM users ORDER BY name`")
	assert.Contains(t, c.Content, "alice@example.com")
	assert.Contains(t, c.Content, "NULL", "null values render as NULL")
	assert.Contains(t, c.Content, "2 rows")
}

func TestExtractDB_BadQuery(t *testing.T) {
	path := fixtureDB(t)
	opts := DefaultOptions()
	opts.DBQuery = "SELECT nope FROM missing"
	e := NewEngine(opts, nil, nil)

	_, err := e.ExtractDB(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query failed")
}

func TestExtractDB_EmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	require.NoError(t, db.Close())

	e := NewEngine(DefaultOptions(), nil, nil)
	chunks, err := e.ExtractDB(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, chunks[0].Content, "No tables.")
}
