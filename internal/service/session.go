package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecoster/parley/internal/domain"
)

// ResolveSessionID returns the candidate id unchanged if present, or
// synthesizes a new one. The caller must hand the resolved id back to the
// client; losing a synthesized id starts a fresh, historyless session.
func (s *Service) ResolveSessionID(candidate string) string {
	if candidate != "" {
		return candidate
	}
	return uuid.New().String()
}

// GetMessages returns the persisted history for a session, oldest first.
func (s *Service) GetMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	messages, err := s.store.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return messages, nil
}

// DeleteSession removes a session and its messages.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
