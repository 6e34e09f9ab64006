package v1

import (
	"context"
	"testing"

	"github.com/ecoster/parley/internal/adapter/llm"
	"github.com/ecoster/parley/internal/config"
	"github.com/ecoster/parley/internal/domain"
	store "github.com/ecoster/parley/internal/repository"
	"github.com/ecoster/parley/internal/service"
)

// stubGenerator is a scriptable Generator for handler tests.
type stubGenerator struct {
	fragments []string
	err       error

	started chan struct{}
	release chan struct{}
}

func (g *stubGenerator) StreamCompletion(ctx context.Context, messages []domain.PromptMessage, onFragment llm.FragmentFunc) error {
	if g.started != nil {
		close(g.started)
		g.started = nil
	}
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	for _, fr := range g.fragments {
		if err := onFragment(fr); err != nil {
			return err
		}
	}
	return g.err
}

func newTestHandler(t *testing.T, gen *stubGenerator) (*Handler, store.Store) {
	t.Helper()
	db, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := service.New(db, gen, &config.Config{})
	return NewHandler(svc), db
}
