package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single completion request
const DefaultTimeout = 30 * time.Second

// CopilotProvider talks to a chat-completions endpoint over plain HTTP.
// The configured URL is the full endpoint; nothing is appended to it.
type CopilotProvider struct {
	url    string
	token  string
	opts   Options
	client *http.Client
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewCopilotProvider creates a new HTTP chat provider
func NewCopilotProvider(url, token string, opts Options) *CopilotProvider {
	return &CopilotProvider{
		url:    url,
		token:  token,
		opts:   opts,
		client: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithHTTPClient replaces the HTTP client, mainly for tests
func (p *CopilotProvider) WithHTTPClient(client *http.Client) *CopilotProvider {
	p.client = client
	return p
}

// Complete implements the Provider interface
func (p *CopilotProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       p.opts.Model,
		Messages:    messages,
		Temperature: p.opts.Temperature,
		MaxTokens:   p.opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %w", ErrNetwork, ctx.Err())
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", fmt.Errorf("%w: %w", ErrNetwork, context.DeadlineExceeded)
		}
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d %s", ErrStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrSchema)
	}
	msg := parsed.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", fmt.Errorf("%w: missing message content", ErrSchema)
	}

	return *msg.Content, nil
}
