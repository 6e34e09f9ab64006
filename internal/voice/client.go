package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ecoster/parley/internal/domain"
)

// Client is the HTTP transport for the conversation server. It remembers
// the session id the server hands back, so every subsequent turn continues
// the same conversation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessionID  string

	// OnFragment, if set, observes each fragment as it arrives, before the
	// full reply is assembled.
	OnFragment func(fragment string)
}

// NewClient creates a new conversation client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SessionID returns the session id of the ongoing conversation, empty until
// the first completed turn.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Transmit sends one user message and consumes the streamed reply,
// returning the concatenation of all fragments.
func (c *Client) Transmit(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(domain.ChatRequest{
		Message:   message,
		SessionID: c.sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		var errResp domain.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			return "", fmt.Errorf("chat error [%d]: %s (type: %s)", resp.StatusCode, errResp.Error.Message, errResp.Error.Type)
		}
		return "", fmt.Errorf("chat error [%d]: %s", resp.StatusCode, string(respBody))
	}

	// The resolved id arrives in the headers, ahead of the body. Keeping it
	// is what makes the next turn a continuation rather than a fresh start.
	if id := resp.Header.Get("X-Session-Id"); id != "" {
		c.sessionID = id
	}

	// The body is a raw ordered text stream; fragments only need cumulative
	// concatenation, there is no framing to parse.
	var reply strings.Builder
	buf := make([]byte, 512)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			fragment := string(buf[:n])
			reply.WriteString(fragment)
			if c.OnFragment != nil {
				c.OnFragment(fragment)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return reply.String(), fmt.Errorf("failed to read stream: %w", readErr)
		}
	}

	return reply.String(), nil
}
