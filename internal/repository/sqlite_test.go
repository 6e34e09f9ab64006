package store

import (
	"context"
	"testing"

	"github.com/ecoster/parley/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEnsureSessionIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.EnsureSession(ctx, "s1"); err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}
	if err := s.EnsureSession(ctx, "s1"); err != nil {
		t.Fatalf("second EnsureSession failed: %v", err)
	}

	session, err := s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session == nil || session.SessionID != "s1" {
		t.Fatalf("unexpected session: %+v", session)
	}
	first := session.CreatedAt

	// A repeat ensure must not touch the existing row.
	if err := s.EnsureSession(ctx, "s1"); err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}
	session, err = s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if !session.CreatedAt.Equal(first) {
		t.Fatalf("created_at changed on repeat ensure: %v != %v", session.CreatedAt, first)
	}
}

func TestAppendMessageRequiresSession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.AppendMessage(ctx, "missing", domain.RoleUser, "hello"); err == nil {
		t.Fatal("expected append to fail for unknown session")
	} else if !domain.IsStorageError(err) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestAppendMessageRejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.EnsureSession(ctx, "s1"); err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}
	if _, err := s.AppendMessage(ctx, "s1", domain.Role("moderator"), "hi"); err == nil {
		t.Fatal("expected append to reject unknown role")
	}
}

func TestListMessagesOrdering(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.EnsureSession(ctx, "s1"); err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}

	contents := []string{"first", "second", "third", "fourth"}
	roles := []domain.Role{domain.RoleUser, domain.RoleAssistant, domain.RoleUser, domain.RoleAssistant}
	for i, c := range contents {
		if _, err := s.AppendMessage(ctx, "s1", roles[i], c); err != nil {
			t.Fatalf("AppendMessage %d failed: %v", i, err)
		}
	}

	messages, err := s.ListMessages(ctx, "s1")
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != len(contents) {
		t.Fatalf("expected %d messages, got %d", len(contents), len(messages))
	}
	for i, msg := range messages {
		if msg.Content != contents[i] {
			t.Fatalf("message %d out of order: got %q, want %q", i, msg.Content, contents[i])
		}
		if i > 0 {
			prev := messages[i-1]
			if msg.CreatedAt.Before(prev.CreatedAt) {
				t.Fatalf("timestamps not non-decreasing at %d", i)
			}
			if msg.MessageID <= prev.MessageID {
				t.Fatalf("message ids not increasing at %d: %d <= %d", i, msg.MessageID, prev.MessageID)
			}
		}
	}
}

func TestListMessagesEmptySession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.EnsureSession(ctx, "s1"); err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}

	messages, err := s.ListMessages(ctx, "s1")
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(messages))
	}

	// Unknown session also reads back empty, not as an error.
	messages, err = s.ListMessages(ctx, "never-created")
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(messages))
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.EnsureSession(ctx, "s1"); err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}
	if _, err := s.AppendMessage(ctx, "s1", domain.RoleUser, "hello"); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}
	if _, err := s.AppendMessage(ctx, "s1", domain.RoleAssistant, "hi there"); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}

	if err := s.DeleteSession(ctx, "s1"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	session, err := s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session != nil {
		t.Fatalf("expected session gone, got %+v", session)
	}

	messages, err := s.ListMessages(ctx, "s1")
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected cascade to remove messages, got %d", len(messages))
	}
}
