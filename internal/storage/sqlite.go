package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/kensaku/internal/models"
)

// SQLiteStore implements MessageStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		name TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		sender TEXT,
		space TEXT,
		create_time TIMESTAMP,
		inserted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_messages_space ON messages(space);
	CREATE INDEX IF NOT EXISTS idx_messages_create_time ON messages(create_time);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateMessage inserts a message, replacing any existing message with the same name.
func (s *SQLiteStore) CreateMessage(ctx context.Context, msg *models.Message) error {
	if msg.CreateTime.IsZero() {
		msg.CreateTime = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO messages (name, text, sender, space, create_time)
		 VALUES (?, ?, ?, ?, ?)`,
		msg.Name, msg.Text, msg.Sender, msg.Space, msg.CreateTime,
	)
	return err
}

// GetMessage returns a message by name.
func (s *SQLiteStore) GetMessage(ctx context.Context, name string) (*models.Message, error) {
	var msg models.Message
	err := s.db.QueryRowContext(ctx,
		`SELECT name, text, sender, space, create_time
		 FROM messages WHERE name = ?`, name,
	).Scan(&msg.Name, &msg.Text, &msg.Sender, &msg.Space, &msg.CreateTime)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrMessageNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteMessage removes a message by name.
func (s *SQLiteStore) DeleteMessage(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrMessageNotFound, name)
	}
	return nil
}

// ListMessages returns a page of messages in insertion order.
func (s *SQLiteStore) ListMessages(ctx context.Context, offset, limit int) ([]*models.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, text, sender, space, create_time
		 FROM messages ORDER BY inserted_at, name LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// AllMessages returns every stored message in insertion order.
func (s *SQLiteStore) AllMessages(ctx context.Context) ([]*models.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, text, sender, space, create_time
		 FROM messages ORDER BY inserted_at, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]*models.Message, error) {
	messages := make([]*models.Message, 0)
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.Name, &msg.Text, &msg.Sender, &msg.Space, &msg.CreateTime); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

// CountMessages returns the number of stored messages.
func (s *SQLiteStore) CountMessages(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&count)
	return count, err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
