package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB is the optional sqlite export target for snapshots. Consumers that
// want SQL access to collected news get it here; the JSON snapshot stays
// the source of truth for the scrape loop.
type DB struct {
	conn *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	conn.SetMaxOpenConns(1)

	d := &DB{conn: conn}
	if err := d.init(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) init() error {
	_, err := d.conn.Exec(`
		CREATE TABLE IF NOT EXISTS articles (
			id          TEXT PRIMARY KEY,
			captured_at TEXT NOT NULL DEFAULT '',
			title       TEXT NOT NULL DEFAULT '',
			currencies  TEXT NOT NULL DEFAULT '[]',
			votes       TEXT NOT NULL DEFAULT '{}',
			source      TEXT NOT NULL DEFAULT '',
			source_url  TEXT NOT NULL DEFAULT '',
			source_type TEXT NOT NULL DEFAULT '',
			sentiment   TEXT NOT NULL DEFAULT '',
			confidence  INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_articles_sentiment ON articles(sentiment);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

// UpsertSnapshot mirrors a snapshot into the articles table, keyed by
// identity key so repeated exports stay idempotent.
func (d *DB) UpsertSnapshot(snap Snapshot) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO articles (id, captured_at, title, currencies, votes, source, source_url, source_type, sentiment, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			captured_at = excluded.captured_at,
			title = excluded.title,
			currencies = excluded.currencies,
			votes = excluded.votes,
			source = excluded.source,
			source_url = excluded.source_url,
			source_type = excluded.source_type,
			sentiment = excluded.sentiment,
			confidence = excluded.confidence
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, a := range snap {
		currencies, err := json.Marshal(a.Currencies)
		if err != nil {
			return fmt.Errorf("encoding currencies for %s: %w", key, err)
		}
		votes, err := json.Marshal(a.Votes)
		if err != nil {
			return fmt.Errorf("encoding votes for %s: %w", key, err)
		}
		if _, err := stmt.Exec(key, a.CapturedAt, a.Title, string(currencies), string(votes), a.Source, a.SourceURL, a.SourceType, a.Sentiment, a.Confidence); err != nil {
			return fmt.Errorf("upserting article %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of exported articles.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.conn.QueryRow("SELECT COUNT(*) FROM articles").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}

// BySentiment returns exported article counts grouped by sentiment label.
func (d *DB) BySentiment() (map[string]int, error) {
	rows, err := d.conn.Query("SELECT sentiment, COUNT(*) FROM articles GROUP BY sentiment")
	if err != nil {
		return nil, fmt.Errorf("querying sentiment counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("scanning sentiment count: %w", err)
		}
		counts[label] = n
	}
	return counts, rows.Err()
}
