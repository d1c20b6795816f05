package tools_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armatrix/mcp-connect-go/tools"
)

func TestCalculator(t *testing.T) {
	calc := &tools.CalculatorTool{}
	ctx := context.Background()

	cases := []struct {
		name      string
		operation string
		a, b      float64
		want      string
	}{
		{"add", "add", 2, 3, "5"},
		{"subtract", "subtract", 10, 4, "6"},
		{"multiply", "multiply", 6, 7, "42"},
		{"divide", "divide", 10, 4, "2.5"},
		{"add decimals exactly", "add", 0.1, 0.2, "0.3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := calc.Execute(ctx, tools.CalculatorInput{
				Operation: tc.operation, A: tc.a, B: tc.b,
			})
			require.NoError(t, err)
			assert.False(t, result.IsError)
			assert.Equal(t, tc.want, result.Text)
		})
	}
}

func TestCalculatorDivideByZero(t *testing.T) {
	calc := &tools.CalculatorTool{}

	result, err := calc.Execute(context.Background(), tools.CalculatorInput{
		Operation: "divide", A: 1, B: 0,
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Text, "divide by zero")
}

func TestCalculatorUnknownOperation(t *testing.T) {
	calc := &tools.CalculatorTool{}

	result, err := calc.Execute(context.Background(), tools.CalculatorInput{
		Operation: "modulo", A: 7, B: 3,
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Text, "unknown operation")
}
