package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/armatrix/mcp-connect-go/internal/usage"
)

// ErrMaxTurns is returned when the loop hits its turn bound before the
// model produces a final answer.
var ErrMaxTurns = errors.New("agent: max turns reached")

// MessageCreator is the seam between the loop and the Anthropic API, so
// tests can substitute a scripted implementation for the real client.
type MessageCreator interface {
	New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

// messageServiceAdapter adapts the real SDK client to MessageCreator.
type messageServiceAdapter struct {
	client *anthropic.Client
}

func (a *messageServiceAdapter) New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return a.client.Messages.New(ctx, params)
}

// Agent holds configuration and tools for tool-calling runs. The same
// Agent can be shared across goroutines; each Run keeps its own message
// history.
type Agent struct {
	creator MessageCreator
	tools   *ToolRegistry
	logger  *slog.Logger
	opts    agentOptions
}

// New creates an Agent. Without WithMessageCreator it uses the real
// Anthropic client, configured through the environment (ANTHROPIC_API_KEY).
func New(opts ...Option) *Agent {
	o := resolveOptions(opts)

	creator := o.creator
	if creator == nil {
		client := anthropic.NewClient()
		creator = &messageServiceAdapter{client: &client}
	}

	return &Agent{
		creator: creator,
		tools:   NewToolRegistry(),
		logger:  o.logger,
		opts:    o,
	}
}

// Tools returns the agent's tool registry for registering tools.
func (a *Agent) Tools() *ToolRegistry {
	return a.tools
}

// Model returns the configured model.
func (a *Agent) Model() anthropic.Model {
	return a.opts.model
}

// Run executes the tool-calling loop for one prompt: call the model,
// execute any requested tools, feed results back, repeat until the model
// stops requesting tools. Returns ErrMaxTurns (with the partial result)
// when the turn bound is hit first.
func (a *Agent) Run(ctx context.Context, prompt string) (*RunResult, error) {
	tracker := usage.NewTracker(usage.DefaultPricing)
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
	}

	var lastText string
	for turn := 0; turn < a.opts.maxTurns; turn++ {
		params := anthropic.MessageNewParams{
			Model:     a.opts.model,
			MaxTokens: int64(a.opts.maxOutputTokens),
			Messages:  messages,
		}
		if a.opts.systemPrompt != "" {
			params.System = []anthropic.TextBlockParam{{Text: a.opts.systemPrompt}}
		}
		if tools := a.tools.ListForAPI(); len(tools) > 0 {
			params.Tools = tools
		}

		msg, err := a.creator.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("agent: messages API: %w", err)
		}

		tracker.Record(a.opts.model, usage.Usage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		})
		messages = append(messages, msg.ToParam())
		lastText = collectText(msg.Content)

		if msg.StopReason != anthropic.StopReasonToolUse {
			total := tracker.Total()
			return &RunResult{
				Text:     lastText,
				NumTurns: turn + 1,
				Usage:    Usage{InputTokens: total.InputTokens, OutputTokens: total.OutputTokens},
				Cost:     tracker.Cost(),
			}, nil
		}

		results := a.runTools(ctx, msg.Content)
		messages = append(messages, anthropic.NewUserMessage(results...))
	}

	total := tracker.Total()
	return &RunResult{
		Text:     lastText,
		NumTurns: a.opts.maxTurns,
		Usage:    Usage{InputTokens: total.InputTokens, OutputTokens: total.OutputTokens},
		Cost:     tracker.Cost(),
	}, ErrMaxTurns
}

// runTools executes every tool_use block and returns the tool_result
// blocks for the next user message.
func (a *Agent) runTools(ctx context.Context, content []anthropic.ContentBlockUnion) []anthropic.ContentBlockParamUnion {
	var results []anthropic.ContentBlockParamUnion

	for _, block := range content {
		if block.Type != "tool_use" {
			continue
		}
		toolUse := block.AsToolUse()
		a.logger.Debug("tool call", "tool", toolUse.Name)

		result, err := a.tools.Execute(ctx, toolUse.Name, json.RawMessage(toolUse.Input))
		if err != nil {
			results = append(results,
				anthropic.NewToolResultBlock(toolUse.ID, fmt.Sprintf("tool error: %s", err), true))
			continue
		}
		results = append(results,
			anthropic.NewToolResultBlock(toolUse.ID, result.Text, result.IsError))
	}
	return results
}

// collectText joins the text blocks of an assistant message.
func collectText(content []anthropic.ContentBlockUnion) string {
	var parts []string
	for _, block := range content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}
