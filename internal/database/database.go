package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// TimeLayout is the fixed-width UTC layout used for every stored timestamp,
// so that ORDER BY on the text column matches chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	dsn := dataSourceName + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		avatar TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	-- Owners are plain id references; removing a user never cascades.
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		company TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		github_username TEXT NOT NULL DEFAULT '',
		-- Store nested documents as JSON text
		skills_json TEXT NOT NULL DEFAULT '[]',
		social_json TEXT NOT NULL DEFAULT '{}',
		experience_json TEXT NOT NULL DEFAULT '[]',
		education_json TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS posts (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		text TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		avatar TEXT NOT NULL DEFAULT '',
		likes_json TEXT NOT NULL DEFAULT '[]',
		comments_json TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// FormatTime renders t in the stored timestamp layout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a timestamp written by FormatTime.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}
