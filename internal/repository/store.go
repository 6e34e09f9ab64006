// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/ecoster/parley/internal/domain"
)

// Store defines the interface for conversation persistence.
type Store interface {
	// EnsureSession idempotently creates a session record if absent.
	EnsureSession(ctx context.Context, sessionID string) error

	// GetSession retrieves a session by id, nil if absent.
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// AppendMessage appends one message with a store-assigned id and
	// timestamp. Fails if the session does not exist.
	AppendMessage(ctx context.Context, sessionID string, role domain.Role, content string) (*domain.Message, error)

	// ListMessages returns all messages for a session, oldest first.
	ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error)

	// DeleteSession removes a session and, by cascade, its messages.
	DeleteSession(ctx context.Context, sessionID string) error

	// Lifecycle
	Close() error
}
