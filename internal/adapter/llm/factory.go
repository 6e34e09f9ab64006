package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvParleyMode is the environment variable name for mode selection.
	EnvParleyMode = "PARLEY_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewGenerator creates a generation client based on the PARLEY_MODE
// environment variable. If PARLEY_MODE=MOCK, returns a MockClient; otherwise
// returns a real Client.
func NewGenerator(baseURL, apiKey, model string, timeout time.Duration) Generator {
	if os.Getenv(EnvParleyMode) == ModeMock {
		log.Println("PARLEY_MODE=MOCK detected, using mock generation client")
		return NewMockClient()
	}
	return NewClient(baseURL, apiKey, model, timeout)
}
