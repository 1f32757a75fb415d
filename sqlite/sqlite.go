// Package sqlite stores extracted articles in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// migrations are applied in order. The index of the last applied
// migration plus one is stored in PRAGMA user_version.
var migrations = []string{
	`CREATE TABLE articles (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		content_hash TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT '',
		published_date TEXT NOT NULL DEFAULT '',
		published_at TEXT,
		source TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT 'unknown',
		translated INTEGER NOT NULL DEFAULT 0,
		top_image TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		publication_name TEXT NOT NULL DEFAULT '',
		meta_description TEXT NOT NULL DEFAULT '',
		canonical_link TEXT NOT NULL DEFAULT '',
		image_urls TEXT NOT NULL DEFAULT '[]',
		video_urls TEXT NOT NULL DEFAULT '[]',
		links TEXT NOT NULL DEFAULT '[]',
		is_paywalled INTEGER NOT NULL DEFAULT 0,
		entities TEXT NOT NULL DEFAULT '{}',
		sentiment_label TEXT,
		sentiment_score REAL,
		nlp_summary TEXT NOT NULL DEFAULT '',
		nlp_processed INTEGER NOT NULL DEFAULT 0,
		extracted_at TEXT NOT NULL
	);
	CREATE INDEX idx_articles_url ON articles(url);
	CREATE INDEX idx_articles_source ON articles(source);
	CREATE INDEX idx_articles_language ON articles(language);
	CREATE INDEX idx_articles_published_at ON articles(published_at);`,

	`CREATE TABLE article_tags (
		article_id TEXT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
		tag TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (article_id, tag)
	);
	CREATE INDEX idx_article_tags_tag ON article_tags(tag);`,
}

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use MemoryPath for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and migrates the schema to the
// latest version.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps an in-memory database alive and serializes
	// writers.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	if db.path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	db.db = conn

	if err := db.migrate(context.Background()); err != nil {
		conn.Close()
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// SchemaVersion returns the number of applied migrations.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

func (db *DB) migrate(ctx context.Context) error {
	version, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
