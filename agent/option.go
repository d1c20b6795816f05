package agent

import (
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
)

// Defaults for the agent loop.
const (
	// DefaultMaxOutputTokens is the default maximum output tokens per response.
	DefaultMaxOutputTokens = 4096

	// DefaultMaxTurns bounds the tool-calling loop.
	DefaultMaxTurns = 10
)

// DefaultModel is the model used when no model is specified.
var DefaultModel = anthropic.ModelClaudeSonnet4_5

// Option configures an Agent via the functional options pattern.
type Option func(*agentOptions)

// agentOptions holds all configurable fields set via Option functions.
type agentOptions struct {
	model           anthropic.Model
	maxOutputTokens int
	maxTurns        int
	systemPrompt    string
	logger          *slog.Logger
	creator         MessageCreator
}

// applyDefaults fills in zero-value fields with sensible defaults.
func (o *agentOptions) applyDefaults() {
	if o.model == "" {
		o.model = DefaultModel
	}
	if o.maxOutputTokens == 0 {
		o.maxOutputTokens = DefaultMaxOutputTokens
	}
	if o.maxTurns == 0 {
		o.maxTurns = DefaultMaxTurns
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
}

// resolveOptions applies all option functions and fills defaults.
func resolveOptions(opts []Option) agentOptions {
	var o agentOptions
	for _, fn := range opts {
		fn(&o)
	}
	o.applyDefaults()
	return o
}

// WithModel sets the Claude model to use.
func WithModel(model anthropic.Model) Option {
	return func(o *agentOptions) { o.model = model }
}

// WithMaxOutputTokens sets the maximum output tokens per response.
func WithMaxOutputTokens(tokens int) Option {
	return func(o *agentOptions) { o.maxOutputTokens = tokens }
}

// WithMaxTurns sets the maximum number of agent loop turns.
func WithMaxTurns(n int) Option {
	return func(o *agentOptions) { o.maxTurns = n }
}

// WithSystemPrompt sets the system prompt for the run.
func WithSystemPrompt(prompt string) Option {
	return func(o *agentOptions) { o.systemPrompt = prompt }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *agentOptions) { o.logger = logger }
}

// WithMessageCreator replaces the Messages API client, primarily so tests
// can inject a scripted implementation.
func WithMessageCreator(creator MessageCreator) Option {
	return func(o *agentOptions) { o.creator = creator }
}
