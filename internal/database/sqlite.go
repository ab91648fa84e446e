package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to :memory: is its own database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &DB{db}, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		chat_id INTEGER NOT NULL,
		p1_score INTEGER NOT NULL,
		p2_score INTEGER NOT NULL,
		p1_status TEXT NOT NULL,
		p2_status TEXT NOT NULL,
		winner INTEGER NOT NULL,
		both_busted INTEGER NOT NULL DEFAULT 0,
		finished_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_matches_chat ON matches(chat_id);
	CREATE INDEX IF NOT EXISTS idx_matches_finished ON matches(chat_id, finished_at);
	`

	_, err := db.Exec(schema)
	return err
}
