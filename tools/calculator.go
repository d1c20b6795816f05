package tools

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/armatrix/mcp-connect-go/agent"
)

// CalculatorInput is the input for the calculator tool.
type CalculatorInput struct {
	Operation string  `json:"operation" jsonschema:"required,description=One of add subtract multiply divide"`
	A         float64 `json:"a" jsonschema:"required,description=The first number"`
	B         float64 `json:"b" jsonschema:"required,description=The second number"`
}

// CalculatorTool performs basic arithmetic locally; it is the one tool in
// this package that needs no MCP server. Decimal arithmetic avoids the
// float artifacts the model would otherwise see in results like 0.1+0.2.
type CalculatorTool struct{}

var _ agent.Tool[CalculatorInput] = (*CalculatorTool)(nil)

func (t *CalculatorTool) Name() string { return "calculator" }
func (t *CalculatorTool) Description() string {
	return "Perform basic arithmetic: add, subtract, multiply or divide two numbers"
}

func (t *CalculatorTool) Execute(_ context.Context, input CalculatorInput) (*agent.ToolResult, error) {
	a := decimal.NewFromFloat(input.A)
	b := decimal.NewFromFloat(input.B)

	var result decimal.Decimal
	switch input.Operation {
	case "add":
		result = a.Add(b)
	case "subtract":
		result = a.Sub(b)
	case "multiply":
		result = a.Mul(b)
	case "divide":
		if b.IsZero() {
			return agent.ErrorResult("cannot divide by zero"), nil
		}
		result = a.Div(b)
	default:
		return agent.ErrorResult(fmt.Sprintf(
			"unknown operation %q: supported operations are add, subtract, multiply, divide",
			input.Operation)), nil
	}

	return agent.TextResult(result.String()), nil
}
