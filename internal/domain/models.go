// Package domain defines the core domain models for the conversation service.
package domain

import "time"

// Role identifies the author of a message. The set is closed: prompts are
// assembled only from these three roles.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Session is a named conversation thread. Sessions are created lazily on the
// first message for a new id and never mutated afterwards.
type Session struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one persisted half of a turn. Messages are immutable; the
// message id is assigned by the store and increases monotonically, which
// breaks timestamp ties when history is read back.
type Message struct {
	MessageID int64     `json:"message_id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PromptMessage is one entry of an assembled prompt. Unlike Message it is
// ephemeral: the injected system instruction appears here but is never stored.
type PromptMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
