package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ecoster/parley/internal/adapter/llm"
	"github.com/ecoster/parley/internal/domain"
)

// StreamChat runs one conversation turn for an already-resolved session id:
// it loads the prior history, persists the user message, streams the
// generated reply through onFragment in arrival order, and persists the
// accumulated reply once the stream completes.
//
// Any error returned before the first onFragment call is a pre-stream
// failure and can still be rendered as a status code. After fragments have
// been forwarded the transport has committed to success; a failure then only
// terminates the stream. In that case the accumulated text is persisted if
// it is non-empty after trimming, so a truncated answer may be stored. A
// cancelled context means the caller disconnected and wants no answer at
// all: generation is abandoned and nothing is persisted for the assistant
// half.
func (s *Service) StreamChat(ctx context.Context, sessionID, message string, onFragment llm.FragmentFunc) error {
	if !s.acquireSession(sessionID) {
		return domain.ErrSessionBusy
	}
	defer s.releaseSession(sessionID)

	if err := s.store.EnsureSession(ctx, sessionID); err != nil {
		return err
	}

	history, err := s.store.ListMessages(ctx, sessionID)
	if err != nil {
		return err
	}

	prompt := assemblePrompt(history, message)

	// The user half of the turn is recorded before generation starts, so a
	// failure from here on still leaves the question in the history.
	if _, err := s.store.AppendMessage(ctx, sessionID, domain.RoleUser, message); err != nil {
		return err
	}

	var reply strings.Builder
	streamErr := s.generator.StreamCompletion(ctx, prompt, func(fragment string) error {
		if err := onFragment(fragment); err != nil {
			return err
		}
		reply.WriteString(fragment)
		return nil
	})

	if ctx.Err() != nil {
		// Caller disconnected mid-turn. Do not persist the partial answer.
		log.Printf("WARN: turn abandoned for session %s: %v", sessionID, ctx.Err())
		return fmt.Errorf("turn cancelled: %w", ctx.Err())
	}

	text := strings.TrimSpace(reply.String())
	if text != "" {
		if _, err := s.store.AppendMessage(ctx, sessionID, domain.RoleAssistant, text); err != nil {
			log.Printf("ERROR: failed to save assistant message for session %s: %v", sessionID, err)
			if streamErr == nil {
				return err
			}
		}
	}

	if streamErr != nil {
		return &domain.GenerationError{Err: streamErr}
	}
	return nil
}

// assemblePrompt builds the ordered prompt for one turn: the static system
// instruction, the role-preserved history, then the new user message last.
func assemblePrompt(history []domain.Message, message string) []domain.PromptMessage {
	prompt := make([]domain.PromptMessage, 0, len(history)+2)
	prompt = append(prompt, domain.PromptMessage{Role: domain.RoleSystem, Content: SystemPrompt})
	for _, msg := range history {
		prompt = append(prompt, domain.PromptMessage{Role: msg.Role, Content: msg.Content})
	}
	prompt = append(prompt, domain.PromptMessage{Role: domain.RoleUser, Content: message})
	return prompt
}
