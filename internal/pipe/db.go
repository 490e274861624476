package pipe

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/skyler14/ios-simulator-skill/internal/output"
	_ "modernc.org/sqlite"
)

// ExtractDB opens a sqlite database and either describes its tables (no
// query) or renders the query's result rows as a markdown chunk.
func (e *Engine) ExtractDB(ctx context.Context, path string) ([]Chunk, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("cannot open database %s: %w", path, err)
	}

	if e.opts.DBQuery == "" {
		return e.describeTables(ctx, db, path)
	}
	return e.runQuery(ctx, db, path)
}

// describeTables lists each user table with its schema and row count
func (e *Engine) describeTables(ctx context.Context, db *sql.DB, path string) ([]Chunk, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name, sql FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("cannot read schema: %w", err)
	}
	defer rows.Close()

	type table struct {
		name   string
		schema string
	}
	var tables []table
	for rows.Next() {
		var t table
		if err := rows.Scan(&t.name, &t.schema); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", path)
	if len(tables) == 0 {
		b.WriteString("No tables.\n")
	}
	for _, t := range tables {
		var count int64
		// Table names come from sqlite_master, not user input
		if err := db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %q", t.name)).Scan(&count); err != nil {
			count = -1
		}
		fmt.Fprintf(&b, "## %s (%d rows)\n\n```sql\n%s\n```\n\n", t.name, count, t.schema)
	}

	return []Chunk{{Source: path, Kind: "table", Content: b.String()}}, nil
}

// runQuery executes the user's query and renders rows as a text table
func (e *Engine) runQuery(ctx context.Context, db *sql.DB, path string) ([]Chunk, error) {
	rows, err := db.QueryContext(ctx, e.opts.DBQuery)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var rendered [][]string
	values := make([]any, len(cols))
	for i := range values {
		values[i] = new(sql.NullString)
	}
	for rows.Next() {
		if err := rows.Scan(values...); err != nil {
			return nil, err
		}
		row := make([]string, len(cols))
		for i, v := range values {
			ns := v.(*sql.NullString)
			if ns.Valid {
				row[i] = ns.String
			} else {
				row[i] = "NULL"
			}
		}
		rendered = append(rendered, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\nQuery: `%s`\n\n", path, e.opts.DBQuery)
	if err := output.Table(&b, cols, rendered); err != nil {
		return nil, err
	}
	fmt.Fprintf(&b, "\n%d rows\n", len(rendered))

	return []Chunk{{Source: path, Kind: "table", Content: b.String()}}, nil
}
