package generator

import (
	"context"
	"fmt"
	"time"
)

// LLMClient abstracts the completion service so it can be replaced or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings is the base configuration handed to concrete clients.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// TransportError wraps a failed completion call (network, auth, quota).
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("completion request failed: %v", e.Err)
	}
	return fmt.Sprintf("%s completion request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
