package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	connector "github.com/armatrix/mcp-connect-go"
)

// BridgedToolName returns the namespaced registry name for an MCP tool:
// mcp__{server}__{tool}.
func BridgedToolName(server, tool string) string {
	return "mcp__" + server + "__" + tool
}

// BridgeTools discovers the tools each named server advertises and
// registers them into the registry under mcp__{server}__{tool}. Servers
// are started (and handshaken) on demand by the connector.
//
// Every connector failure during a bridged call is converted into an error
// tool result so the model sees it; nothing is raised past the loop.
func BridgeTools(ctx context.Context, registry *ToolRegistry, conn *connector.Connector, servers ...string) error {
	for _, server := range servers {
		infos, err := conn.ListTools(ctx, server)
		if err != nil {
			return fmt.Errorf("agent: bridging %s: %w", server, err)
		}

		for _, info := range infos {
			server, tool := server, info.Name
			registry.RegisterRaw(
				BridgedToolName(server, tool),
				info.Description,
				bridgedSchema(info.InputSchema),
				func(ctx context.Context, raw json.RawMessage) (*ToolResult, error) {
					var args map[string]any
					if len(raw) > 0 {
						if err := json.Unmarshal(raw, &args); err != nil {
							return ErrorResult(fmt.Sprintf("invalid arguments: %s", err)), nil
						}
					}
					result, err := conn.CallTool(ctx, server, tool, args)
					if err != nil {
						return ErrorResult(fmt.Sprintf("mcp call failed: %s", err)), nil
					}
					return toolResultFromMCP(result), nil
				},
			)
		}
	}
	return nil
}

// bridgedSchema converts a raw MCP inputSchema into the Anthropic schema
// param. Unparsable schemas degrade to an unconstrained object.
func bridgedSchema(raw json.RawMessage) anthropic.ToolInputSchemaParam {
	var schema anthropic.ToolInputSchemaParam
	if len(raw) == 0 {
		return schema
	}

	var parsed struct {
		Properties map[string]any `json:"properties"`
		Required   []string       `json:"required"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return schema
	}
	schema.Properties = parsed.Properties
	schema.Required = parsed.Required
	return schema
}

// toolResultFromMCP reshapes a tools/call result into a ToolResult. MCP
// results carry a content array of typed blocks plus an isError flag; the
// text blocks are joined, and anything unrecognized is passed through raw.
func toolResultFromMCP(raw json.RawMessage) *ToolResult {
	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Content) == 0 {
		return TextResult(string(raw))
	}

	var parts []string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	return &ToolResult{Text: strings.Join(parts, "\n"), IsError: parsed.IsError}
}
