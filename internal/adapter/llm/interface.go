// Package llm provides an abstraction for the generation backend.
package llm

import (
	"context"

	"github.com/ecoster/parley/internal/domain"
)

// FragmentFunc is called for each text fragment as it is produced, in
// generation order. Returning an error aborts the stream.
type FragmentFunc func(fragment string) error

// Generator defines the interface for the generation backend. The service
// layer consumes it as an opaque "messages in, fragment stream out"
// capability.
type Generator interface {
	// StreamCompletion sends the assembled prompt and streams back text
	// fragments through onFragment until completion or failure.
	StreamCompletion(ctx context.Context, messages []domain.PromptMessage, onFragment FragmentFunc) error
}

// Ensure both implementations satisfy the interface.
var (
	_ Generator = (*Client)(nil)
	_ Generator = (*MockClient)(nil)
)
