package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		credential      TEXT NOT NULL DEFAULT '!unset',
		is_admin        INTEGER NOT NULL DEFAULT 0,
		is_master_admin INTEGER NOT NULL DEFAULT 0,
		created_at      INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS board_columns (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		position   INTEGER NOT NULL DEFAULT 0,
		created_by TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_board_columns_project ON board_columns(project_id)`,

	`CREATE TABLE IF NOT EXISTS cards (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		column_id   TEXT NOT NULL REFERENCES board_columns(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		position    INTEGER NOT NULL DEFAULT 0,
		assignee_id TEXT REFERENCES users(id) ON DELETE SET NULL,
		due_date    INTEGER,
		created_by  TEXT NOT NULL DEFAULT '',
		created_at  INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cards_project ON cards(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_column ON cards(column_id, position)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tags_project ON tags(project_id)`,

	`CREATE TABLE IF NOT EXISTS card_tags (
		card_id TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		tag_id  TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (card_id, tag_id)
	)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		card_id    TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		author_id  TEXT NOT NULL,
		text       TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_comments_card ON comments(card_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS revisions (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		card_id    TEXT REFERENCES cards(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL DEFAULT '',
		action     TEXT NOT NULL,
		details    TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_revisions_project ON revisions(project_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_revisions_card ON revisions(card_id)`,

	`CREATE TABLE IF NOT EXISTS filter_presets (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		created_by      TEXT NOT NULL DEFAULT '',
		assignee_id     TEXT,
		tag_ids         TEXT NOT NULL DEFAULT '[]',
		unassigned_only INTEGER NOT NULL DEFAULT 0,
		search          TEXT NOT NULL DEFAULT '',
		date_field      TEXT CHECK(date_field IS NULL OR date_field IN ('dueDate','createdAt')),
		date_from       TEXT,
		date_to         TEXT,
		created_at      INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_filter_presets_project ON filter_presets(project_id)`,
}
