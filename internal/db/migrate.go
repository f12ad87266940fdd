package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		mobile        TEXT PRIMARY KEY CHECK(mobile != ''),
		name          TEXT NOT NULL,
		email         TEXT NOT NULL DEFAULT '',
		country       TEXT NOT NULL,
		state         TEXT NOT NULL,
		district      TEXT NOT NULL,
		tashil        TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email ON accounts(email) WHERE email != ''`,

	`CREATE TABLE IF NOT EXISTS active_user (
		id         TEXT PRIMARY KEY DEFAULT 'default',
		mobile     TEXT REFERENCES accounts(mobile) ON DELETE SET NULL,
		updated_at TEXT
	)`,

	// Seed the single login slot
	`INSERT OR IGNORE INTO active_user (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS chat_messages (
		id         TEXT PRIMARY KEY,
		mobile     TEXT NOT NULL REFERENCES accounts(mobile) ON DELETE CASCADE,
		persona    TEXT NOT NULL
		           CHECK(persona IN ('agriculture','pest','buyer','weather')),
		role       TEXT NOT NULL CHECK(role IN ('user','bot')),
		text       TEXT NOT NULL DEFAULT '',
		image_mime TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_chat_messages_user ON chat_messages(mobile, persona, created_at)`,

	// Record the reply language per message
	`ALTER TABLE chat_messages ADD COLUMN language TEXT NOT NULL DEFAULT 'en'`,
}
