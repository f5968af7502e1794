package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// LangChainProvider adapts a langchaingo model to the Provider interface
type LangChainProvider struct {
	model llms.Model
	opts  Options
}

// NewLangChainProvider wraps an existing langchaingo model
func NewLangChainProvider(model llms.Model, opts Options) *LangChainProvider {
	return &LangChainProvider{model: model, opts: opts}
}

// NewOpenAIProvider creates a provider for an OpenAI-compatible API.
// baseURL is the API root; the client appends /chat/completions.
func NewOpenAIProvider(baseURL, token string, opts Options) (*LangChainProvider, error) {
	client, err := openai.New(
		openai.WithToken(token),
		openai.WithBaseURL(baseURL),
		openai.WithModel(opts.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create OpenAI client: %v", ErrNotConfigured, err)
	}

	return NewLangChainProvider(client, opts), nil
}

// Complete implements the Provider interface
func (p *LangChainProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	content := make([]llms.MessageContent, len(messages))
	for i, msg := range messages {
		var msgType schema.ChatMessageType
		switch msg.Role {
		case RoleSystem:
			msgType = schema.ChatMessageTypeSystem
		case RoleAssistant:
			msgType = schema.ChatMessageTypeAI
		default:
			msgType = schema.ChatMessageTypeHuman
		}
		content[i] = llms.TextParts(msgType, msg.Content)
	}

	opts := []llms.CallOption{
		llms.WithMaxTokens(p.opts.MaxTokens),
		llms.WithTemperature(p.opts.Temperature),
	}
	if p.opts.Model != "" {
		opts = append(opts, llms.WithModel(p.opts.Model))
	}

	response, err := p.model.GenerateContent(ctx, content, opts...)
	if err != nil {
		return "", classifyLangChainError(err)
	}

	if response == nil || len(response.Choices) == 0 || response.Choices[0] == nil {
		return "", fmt.Errorf("%w: empty response", ErrSchema)
	}

	return response.Choices[0].Content, nil
}

// statusErrorPrefix starts the error langchaingo's OpenAI client returns for
// any non-200 reply; it carries no typed error.
const statusErrorPrefix = "API returned unexpected status code"

func classifyLangChainError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	case strings.HasPrefix(err.Error(), statusErrorPrefix):
		return fmt.Errorf("%w: %v", ErrStatus, err)
	case errors.Is(err, openai.ErrEmptyResponse),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr):
		return fmt.Errorf("%w: %v", ErrSchema, err)
	default:
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
}
