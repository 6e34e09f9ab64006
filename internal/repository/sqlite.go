package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ecoster/parley/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	// Enable foreign keys so session deletes cascade to messages
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// EnsureSession creates a session record if one does not exist yet. Calling
// it again for the same id is a no-op.
func (s *SQLiteStore) EnsureSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (session_id, created_at) VALUES (?, ?)`,
		sessionID, time.Now().UTC())
	if err != nil {
		return &domain.StorageError{Op: "ensure session", Err: err}
	}
	return nil
}

// GetSession retrieves a session by id. Returns nil if the session does not exist.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session domain.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, created_at FROM sessions WHERE session_id = ?`,
		sessionID).Scan(&session.SessionID, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get session", Err: err}
	}
	return &session, nil
}

// AppendMessage appends one message to a session's log. The message id and
// timestamp are assigned here; the id is an AUTOINCREMENT column, so ties on
// created_at resolve in insertion order.
func (s *SQLiteStore) AppendMessage(ctx context.Context, sessionID string, role domain.Role, content string) (*domain.Message, error) {
	if !role.Valid() {
		return nil, &domain.StorageError{Op: "append message", Err: fmt.Errorf("invalid role %q", role)}
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (session_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
		sessionID, role, content, now)
	if err != nil {
		return nil, &domain.StorageError{Op: "append message", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, &domain.StorageError{Op: "append message", Err: err}
	}

	return &domain.Message{
		MessageID: id,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: now,
	}, nil
}

// ListMessages retrieves all messages for a session, oldest first. A session
// with no history yields an empty slice, not an error.
func (s *SQLiteStore) ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, session_id, role, content, created_at
		 FROM messages
		 WHERE session_id = ?
		 ORDER BY created_at ASC, message_id ASC`,
		sessionID)
	if err != nil {
		return nil, &domain.StorageError{Op: "list messages", Err: err}
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.MessageID, &msg.SessionID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, &domain.StorageError{Op: "list messages", Err: err}
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list messages", Err: err}
	}
	return messages, nil
}

// DeleteSession removes a session. Messages go with it via the foreign key
// cascade. Deleting an unknown session is a no-op.
func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE session_id = ?`,
		sessionID)
	if err != nil {
		return &domain.StorageError{Op: "delete session", Err: err}
	}
	return nil
}
