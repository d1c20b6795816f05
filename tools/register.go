package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	connector "github.com/armatrix/mcp-connect-go"
	"github.com/armatrix/mcp-connect-go/agent"
)

// Per-call budgets. Spreadsheet operations get twice the budget of the
// lighter services since workbook I/O is the slow path.
const (
	defaultCallBudget = 30 * time.Second
	excelCallBudget   = 60 * time.Second
)

// RegisterAll registers every tool in this package: the MCP-backed Excel,
// Slack and Time wrappers bound to conn, and the local calculator.
func RegisterAll(registry *agent.ToolRegistry, conn *connector.Connector) {
	agent.RegisterTool[CalculatorInput](registry, &CalculatorTool{})

	agent.RegisterTool[ExcelCreateWorkbookInput](registry, &ExcelCreateWorkbookTool{conn: conn})
	agent.RegisterTool[ExcelReadDataInput](registry, &ExcelReadDataTool{conn: conn})
	agent.RegisterTool[ExcelWriteDataInput](registry, &ExcelWriteDataTool{conn: conn})
	agent.RegisterTool[ExcelWorkbookMetadataInput](registry, &ExcelWorkbookMetadataTool{conn: conn})

	agent.RegisterTool[SlackListChannelsInput](registry, &SlackListChannelsTool{conn: conn})
	agent.RegisterTool[SlackPostMessageInput](registry, &SlackPostMessageTool{conn: conn})
	agent.RegisterTool[SlackChannelHistoryInput](registry, &SlackChannelHistoryTool{conn: conn})

	agent.RegisterTool[TimeCurrentInput](registry, &TimeCurrentTool{conn: conn})
	agent.RegisterTool[TimeConvertInput](registry, &TimeConvertTool{conn: conn})
}

// callService invokes one MCP tool within the given budget and reshapes
// the outcome into a tool result. All failures become error results.
func callService(ctx context.Context, conn *connector.Connector, service, tool string, args map[string]any, budget time.Duration) (*agent.ToolResult, error) {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	result, err := conn.CallTool(ctx, service, tool, args)
	if err != nil {
		return agent.ErrorResult(fmt.Sprintf("%s operation failed: %s", service, err)), nil
	}
	return resultFromMCP(result), nil
}

// resultFromMCP joins the text blocks of an MCP tools/call result. Results
// that do not carry the content-array shape pass through raw.
func resultFromMCP(raw json.RawMessage) *agent.ToolResult {
	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Content) == 0 {
		return agent.TextResult(string(raw))
	}

	var parts []string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	return &agent.ToolResult{Text: strings.Join(parts, "\n"), IsError: parsed.IsError}
}
