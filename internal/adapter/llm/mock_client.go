package llm

import (
	"context"
	"fmt"

	"github.com/ecoster/parley/internal/domain"
)

// MockClient is a mock implementation of Generator for tests and offline use.
type MockClient struct{}

// NewMockClient creates a new mock generation client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// StreamCompletion simulates a streaming response built from the last user
// message, delivered in small chunks.
func (m *MockClient) StreamCompletion(ctx context.Context, messages []domain.PromptMessage, onFragment FragmentFunc) error {
	response := m.generateMockResponse(messages)

	for _, chunk := range splitIntoChunks(response, 10) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := onFragment(chunk); err != nil {
			return err
		}
	}
	return nil
}

// generateMockResponse builds a deterministic reply from the prompt.
func (m *MockClient) generateMockResponse(messages []domain.PromptMessage) string {
	var lastUserMessage string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			lastUserMessage = messages[i].Content
			break
		}
	}

	if lastUserMessage == "" {
		return "[MOCK] This is a mock response from the generation client."
	}
	return fmt.Sprintf("[MOCK] Received your message: %q. This is a mock response.", truncate(lastUserMessage, 100))
}

// splitIntoChunks splits a string into chunks of approximately the given size.
func splitIntoChunks(s string, chunkSize int) []string {
	if len(s) == 0 {
		return []string{""}
	}

	var chunks []string
	for i := 0; i < len(s); i += chunkSize {
		end := i + chunkSize
		if end > len(s) {
			end = len(s)
		}
		chunks = append(chunks, s[i:end])
	}
	return chunks
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
