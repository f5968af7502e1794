// Package assistant turns cafe state into a briefing and forwards questions
// to a remote chat-completion provider.
package assistant

import (
	"context"
	"fmt"
	"log"
	"time"

	"cafecopilot/internal/config"
	"cafecopilot/internal/models"
	"cafecopilot/internal/models/providers"
	"cafecopilot/internal/monitoring"
)

// User-facing replies for the two failure modes
const (
	NotConfiguredMessage = "Copilot API is not configured. Please set COPILOT_API_URL and COPILOT_API_TOKEN."
	OfflineMessage       = "I'm running in offline mode. Please configure the Copilot API for live responses."
)

// Persona is prepended to the context in the system message
const Persona = "You are a helpful cafe assistant. Provide concise, friendly answers. " +
	"Use the provided context and avoid guessing."

// Completion policy
const (
	Temperature    = 0.4
	MaxTokens      = 300
	RequestTimeout = providers.DefaultTimeout
)

// Dispatcher sends questions plus the cafe briefing to a chat provider
type Dispatcher struct {
	cfg      config.AssistantConfig
	provider providers.Provider
	metrics  *monitoring.Metrics
	now      func() time.Time
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithProvider overrides the provider built from the configuration
func WithProvider(p providers.Provider) Option {
	return func(d *Dispatcher) { d.provider = p }
}

// WithMetrics records request outcomes
func WithMetrics(m *monitoring.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithClock sets the time source used for the trend window
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// CompletionOptions returns the sampling policy for the configured model
func CompletionOptions(cfg config.AssistantConfig) providers.Options {
	return providers.Options{
		Model:       cfg.Model,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	}
}

// NewDispatcher creates a dispatcher. When cfg is incomplete no provider is
// built and every request answers NotConfiguredMessage.
func NewDispatcher(cfg config.AssistantConfig, opts ...Option) *Dispatcher {
	d := &Dispatcher{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}

	if d.provider == nil && cfg.Configured() {
		p, err := providers.New(cfg, CompletionOptions(cfg))
		if err != nil {
			log.Printf("Assistant provider unavailable: %v", err)
		} else {
			d.provider = p
		}
	}
	return d
}

// Configured reports whether requests will reach a provider
func (d *Dispatcher) Configured() bool {
	return d.cfg.Configured()
}

// GenerateResponse answers prompt using the current cafe state. It never
// returns an error: failures become OfflineMessage.
func (d *Dispatcher) GenerateResponse(ctx context.Context, prompt string, menu []models.MenuItem, inventory []models.InventoryItem, orders []models.Order) string {
	if !d.cfg.Configured() {
		d.metrics.ObserveAssistant(providers.ErrorKind(providers.ErrNotConfigured), 0)
		return NotConfiguredMessage
	}

	briefing := BuildContext(menu, inventory, orders, d.now())

	reply, err := d.complete(ctx, briefing, prompt)
	if err != nil {
		log.Printf("Assistant request failed (%s): %v", providers.ErrorKind(err), err)
		return OfflineMessage
	}
	return reply
}

func (d *Dispatcher) complete(ctx context.Context, briefing, prompt string) (reply string, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Assistant provider panicked: %v", r)
			reply, err = "", fmt.Errorf("provider panic: %v", r)
		}
		d.metrics.ObserveAssistant(providers.ErrorKind(err), time.Since(start))
	}()

	if d.provider == nil {
		return "", providers.ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	return d.provider.Complete(ctx, []providers.Message{
		{Role: providers.RoleSystem, Content: Persona + "\n\n" + briefing},
		{Role: providers.RoleUser, Content: prompt},
	})
}
