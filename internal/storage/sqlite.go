// Package storage maintains a SQLite index of BibTeX entries used to
// detect duplicate keys and DOIs across files.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// IndexedEntry is one row of the entry index.
type IndexedEntry struct {
	Key         string `json:"key"`
	DOI         string `json:"doi,omitempty"`          // normalized, may be empty
	AuthorTitle string `json:"author_title,omitempty"` // fingerprint component
	File        string `json:"file"`
}

// Open opens or creates an index database at the given path. Use
// ":memory:" for an ephemeral index.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			rowid_key INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL,
			doi TEXT,
			author_title TEXT,
			file TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_key ON entries(key);
		CREATE INDEX IF NOT EXISTS idx_entries_doi ON entries(doi) WHERE doi != '';
		CREATE INDEX IF NOT EXISTS idx_entries_author_title ON entries(author_title) WHERE author_title != '';
	`

	_, err := db.Exec(schema)
	return err
}

// Insert adds one entry to the index.
func (d *DB) Insert(e IndexedEntry) error {
	_, err := d.db.Exec(
		`INSERT INTO entries (key, doi, author_title, file) VALUES (?, ?, ?, ?)`,
		e.Key, e.DOI, e.AuthorTitle, e.File,
	)
	if err != nil {
		return fmt.Errorf("inserting entry %s: %w", e.Key, err)
	}
	return nil
}

// Collision groups index rows sharing a duplicate key, DOI, or
// author-title fingerprint.
type Collision struct {
	Type    string         `json:"type"` // key, doi, or author_title
	Value   string         `json:"value"`
	Entries []IndexedEntry `json:"entries"`
}

// Collisions reports every indexed value shared by more than one
// entry, grouped by match type then value.
func (d *DB) Collisions() ([]Collision, error) {
	var out []Collision

	for _, col := range []string{"key", "doi", "author_title"} {
		query := fmt.Sprintf(`
			SELECT key, doi, author_title, file FROM entries
			WHERE %[1]s != '' AND %[1]s IN (
				SELECT %[1]s FROM entries WHERE %[1]s != ''
				GROUP BY %[1]s HAVING COUNT(*) > 1
			)
			ORDER BY %[1]s, rowid_key`, col)

		rows, err := d.db.Query(query)
		if err != nil {
			return nil, fmt.Errorf("querying %s collisions: %w", col, err)
		}

		groups := make(map[string][]IndexedEntry)
		var order []string
		for rows.Next() {
			var e IndexedEntry
			if err := rows.Scan(&e.Key, &e.DOI, &e.AuthorTitle, &e.File); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning %s collisions: %w", col, err)
			}
			val := collisionValue(col, e)
			if _, seen := groups[val]; !seen {
				order = append(order, val)
			}
			groups[val] = append(groups[val], e)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("reading %s collisions: %w", col, err)
		}

		for _, val := range order {
			out = append(out, Collision{Type: col, Value: val, Entries: groups[val]})
		}
	}

	return out, nil
}

func collisionValue(col string, e IndexedEntry) string {
	switch col {
	case "doi":
		return e.DOI
	case "author_title":
		return e.AuthorTitle
	default:
		return e.Key
	}
}

// Count returns the number of indexed entries.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}
