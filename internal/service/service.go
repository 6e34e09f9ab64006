// Package service implements the conversation orchestrator.
package service

import (
	"sync"

	"github.com/ecoster/parley/internal/adapter/llm"
	"github.com/ecoster/parley/internal/config"
	store "github.com/ecoster/parley/internal/repository"
)

// SystemPrompt is the static instruction injected at assembly time on every
// turn. It is never written to the message store.
const SystemPrompt = "You are a helpful voice assistant. Answer briefly and in plain language, " +
	"without markup or formatting, so your reply can be spoken aloud."

// Service is the conversation orchestrator. It owns the in-flight set that
// keeps turns serialized within a session.
type Service struct {
	store     store.Store
	generator llm.Generator
	config    *config.Config

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates a new service.
func New(store store.Store, generator llm.Generator, cfg *config.Config) *Service {
	return &Service{
		store:     store,
		generator: generator,
		config:    cfg,
		inFlight:  make(map[string]struct{}),
	}
}

// acquireSession marks a session as having a turn in flight. It fails fast
// rather than queueing: a second concurrent turn for the same id reports
// SessionBusy to the caller, which may retry.
func (s *Service) acquireSession(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, held := s.inFlight[sessionID]; held {
		return false
	}
	s.inFlight[sessionID] = struct{}{}
	return true
}

func (s *Service) releaseSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}
