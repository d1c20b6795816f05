package agent

import "github.com/shopspring/decimal"

// Usage tracks token consumption for a run.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// RunResult is returned when a run completes.
type RunResult struct {
	// Text is the model's final text output.
	Text string

	// NumTurns is the number of Messages API calls made.
	NumTurns int

	// Usage is the cumulative token usage across the run.
	Usage Usage

	// Cost is the cumulative cost of the run in USD.
	Cost decimal.Decimal
}
