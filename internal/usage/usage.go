// Package usage tracks cumulative token usage and USD cost across
// Anthropic API calls.
package usage

import (
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/shopspring/decimal"
)

// Usage holds token counts for a single API call.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Pricing holds per-model token prices in USD per million tokens.
type Pricing struct {
	InputPerMTok  decimal.Decimal
	OutputPerMTok decimal.Decimal
}

var million = decimal.NewFromInt(1_000_000)

// Cost returns the USD cost of the given usage at this pricing.
func (p Pricing) Cost(u Usage) decimal.Decimal {
	input := decimal.NewFromInt(u.InputTokens).Mul(p.InputPerMTok).Div(million)
	output := decimal.NewFromInt(u.OutputTokens).Mul(p.OutputPerMTok).Div(million)
	return input.Add(output)
}

// DefaultPricing contains built-in pricing for Claude models
// (USD per million tokens).
var DefaultPricing = map[anthropic.Model]Pricing{
	anthropic.ModelClaudeSonnet4_5: {
		InputPerMTok:  decimal.NewFromFloat(3),
		OutputPerMTok: decimal.NewFromFloat(15),
	},
	anthropic.ModelClaudeHaiku4_5: {
		InputPerMTok:  decimal.NewFromFloat(1),
		OutputPerMTok: decimal.NewFromFloat(5),
	},
}

// Tracker accumulates usage and cost across API calls. It is safe for
// concurrent use.
type Tracker struct {
	mu      sync.Mutex
	total   Usage
	cost    decimal.Decimal
	pricing map[anthropic.Model]Pricing
}

// NewTracker creates a Tracker with the given pricing table.
func NewTracker(pricing map[anthropic.Model]Pricing) *Tracker {
	return &Tracker{
		cost:    decimal.Zero,
		pricing: pricing,
	}
}

// Record adds one API call's usage. Unknown models have their tokens
// counted but contribute no cost.
func (t *Tracker) Record(model anthropic.Model, u Usage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total.InputTokens += u.InputTokens
	t.total.OutputTokens += u.OutputTokens

	if p, ok := t.pricing[model]; ok {
		t.cost = t.cost.Add(p.Cost(u))
	}
}

// Total returns the cumulative token usage.
func (t *Tracker) Total() Usage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Cost returns the cumulative cost in USD.
func (t *Tracker) Cost() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cost
}
