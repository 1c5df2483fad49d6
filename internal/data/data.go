package data

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/digichlist/digichlist-bot/internal/biz/repo"
	"github.com/digichlist/digichlist-bot/telegram"

	_ "modernc.org/sqlite"
)

// Repositories contains all repositories
type Repositories struct {
	User    repo.UserRepo
	Defect  repo.DefectRepo
	Task    repo.TaskRepo
	Message repo.MessageRepo

	db *sql.DB
}

// NewRepositories opens the database, ensures the schema and wires all
// repositories
func NewRepositories(client *telegram.Client, dbPath string) (*Repositories, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		User:    NewUserRepo(db),
		Defect:  NewDefectRepo(db),
		Task:    NewTaskRepo(db),
		Message: NewTelegramRepo(client),
		db:      db,
	}, nil
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.db.Close()
}

func openDB(dbPath string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id INTEGER NOT NULL UNIQUE,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			username TEXT NOT NULL DEFAULT '',
			is_registered INTEGER NOT NULL DEFAULT 0,
			role_name TEXT,
			can_add INTEGER NOT NULL DEFAULT 0,
			can_be_assigned INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS defects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			room_number INTEGER NOT NULL,
			description TEXT NOT NULL,
			created_by INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			status INTEGER NOT NULL,
			assigned_chat_id INTEGER NOT NULL DEFAULT 0,
			closed_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_defects_assigned ON defects(assigned_chat_id)`,
		`CREATE TABLE IF NOT EXISTS command_tasks (
			id TEXT PRIMARY KEY,
			chat_id INTEGER NOT NULL,
			command_name TEXT NOT NULL,
			stage INTEGER NOT NULL,
			defect_id INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			expires_at INTEGER NOT NULL,
			closed_at INTEGER
		)`,
		// The single-open-task-per-chat invariant lives here: a second open
		// task for the same chat violates this index.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_command_tasks_open
			ON command_tasks(chat_id) WHERE closed_at IS NULL`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
