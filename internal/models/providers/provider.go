package providers

import (
	"context"
	"errors"
	"fmt"

	"cafecopilot/internal/config"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider interface for chat-completion backends
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Options are the sampling limits sent with every completion
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

var (
	ErrNotConfigured = errors.New("chat provider is not configured")
	ErrNetwork       = errors.New("chat provider unreachable")
	ErrStatus        = errors.New("chat provider returned an error status")
	ErrSchema        = errors.New("chat provider returned an unexpected response")
)

// ErrorKind returns a short label for err suitable for logs and metric labels
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotConfigured):
		return "config"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrSchema):
		return "schema"
	default:
		return "unknown"
	}
}

// New creates the provider selected by cfg.Provider
func New(cfg config.AssistantConfig, opts Options) (Provider, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	switch cfg.Provider {
	case "", config.ProviderHTTP:
		return NewCopilotProvider(cfg.URL, cfg.Token, opts), nil
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.URL, cfg.Token, opts)
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", ErrNotConfigured, cfg.Provider)
	}
}
