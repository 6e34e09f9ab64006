package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ecoster/parley/internal/domain"
)

func TestClientStreamCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\", world\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{},\"finish_reason\":\"stop\"}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "gpt", time.Second)
	var got []string
	err := client.StreamCompletion(context.Background(), []domain.PromptMessage{
		{Role: domain.RoleUser, Content: "hello"},
	}, func(fragment string) error {
		got = append(got, fragment)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamCompletion failed: %v", err)
	}
	if strings.Join(got, "") != "Hello, world" {
		t.Fatalf("unexpected fragments: %v", got)
	}
}

func TestClientStreamCompletionUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"bad","type":"invalid_request_error"}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "gpt", time.Second)
	err := client.StreamCompletion(context.Background(), []domain.PromptMessage{
		{Role: domain.RoleUser, Content: "hello"},
	}, func(string) error { return nil })
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid_request_error") {
		t.Fatalf("expected upstream error details, got: %v", err)
	}
}

func TestClientStreamCompletionCallbackAbort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	abort := errors.New("abort")
	client := NewClient(server.URL, "", "gpt", time.Second)
	err := client.StreamCompletion(context.Background(), []domain.PromptMessage{
		{Role: domain.RoleUser, Content: "hello"},
	}, func(string) error { return abort })
	if !errors.Is(err, abort) {
		t.Fatalf("expected callback error to propagate, got: %v", err)
	}
}

func TestClientSetsAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("unexpected Authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", "gpt", time.Second)
	if err := client.StreamCompletion(context.Background(), nil, func(string) error { return nil }); err != nil {
		t.Fatalf("StreamCompletion failed: %v", err)
	}
}

func TestMockClientStreamsLastUserMessage(t *testing.T) {
	client := NewMockClient()
	var got strings.Builder
	err := client.StreamCompletion(context.Background(), []domain.PromptMessage{
		{Role: domain.RoleSystem, Content: "be brief"},
		{Role: domain.RoleUser, Content: "what time is it"},
	}, func(fragment string) error {
		got.WriteString(fragment)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamCompletion failed: %v", err)
	}
	if !strings.Contains(got.String(), "what time is it") {
		t.Fatalf("expected echo of user message, got: %q", got.String())
	}
}
