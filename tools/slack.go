package tools

import (
	"context"

	connector "github.com/armatrix/mcp-connect-go"
	"github.com/armatrix/mcp-connect-go/agent"
)

// slackService is the registry name of the Slack MCP server.
const slackService = "slack"

// SlackListChannelsInput is the input for slack_list_channels.
type SlackListChannelsInput struct {
	Limit *int `json:"limit,omitempty" jsonschema:"description=Maximum number of channels to return"`
}

// SlackListChannelsTool lists the workspace's channels.
type SlackListChannelsTool struct {
	conn *connector.Connector
}

var _ agent.Tool[SlackListChannelsInput] = (*SlackListChannelsTool)(nil)

// NewSlackListChannelsTool binds the tool to a connector.
func NewSlackListChannelsTool(conn *connector.Connector) *SlackListChannelsTool {
	return &SlackListChannelsTool{conn: conn}
}

func (t *SlackListChannelsTool) Name() string { return "slack_list_channels" }
func (t *SlackListChannelsTool) Description() string {
	return "List Slack channels in the workspace"
}

func (t *SlackListChannelsTool) Execute(ctx context.Context, input SlackListChannelsInput) (*agent.ToolResult, error) {
	args := map[string]any{}
	if input.Limit != nil {
		args["limit"] = *input.Limit
	}
	return callService(ctx, t.conn, slackService, "slack_list_channels", args, defaultCallBudget)
}

// SlackPostMessageInput is the input for slack_post_message.
type SlackPostMessageInput struct {
	ChannelID string `json:"channel_id" jsonschema:"required,description=Channel ID to post to (starts with C)"`
	Text      string `json:"text" jsonschema:"required,description=Message text to send"`
}

// SlackPostMessageTool posts a message to a channel.
type SlackPostMessageTool struct {
	conn *connector.Connector
}

var _ agent.Tool[SlackPostMessageInput] = (*SlackPostMessageTool)(nil)

// NewSlackPostMessageTool binds the tool to a connector.
func NewSlackPostMessageTool(conn *connector.Connector) *SlackPostMessageTool {
	return &SlackPostMessageTool{conn: conn}
}

func (t *SlackPostMessageTool) Name() string { return "slack_post_message" }
func (t *SlackPostMessageTool) Description() string {
	return "Post a message to a Slack channel"
}

func (t *SlackPostMessageTool) Execute(ctx context.Context, input SlackPostMessageInput) (*agent.ToolResult, error) {
	if input.ChannelID == "" || input.Text == "" {
		return agent.ErrorResult("channel_id and text are required"), nil
	}
	return callService(ctx, t.conn, slackService, "slack_post_message", map[string]any{
		"channel_id": input.ChannelID,
		"text":       input.Text,
	}, defaultCallBudget)
}

// SlackChannelHistoryInput is the input for slack_get_channel_history.
type SlackChannelHistoryInput struct {
	ChannelID string `json:"channel_id" jsonschema:"required,description=Channel ID to read (starts with C)"`
	Limit     *int   `json:"limit,omitempty" jsonschema:"description=Number of messages to retrieve"`
}

// SlackChannelHistoryTool retrieves recent messages from a channel.
type SlackChannelHistoryTool struct {
	conn *connector.Connector
}

var _ agent.Tool[SlackChannelHistoryInput] = (*SlackChannelHistoryTool)(nil)

// NewSlackChannelHistoryTool binds the tool to a connector.
func NewSlackChannelHistoryTool(conn *connector.Connector) *SlackChannelHistoryTool {
	return &SlackChannelHistoryTool{conn: conn}
}

func (t *SlackChannelHistoryTool) Name() string { return "slack_get_channel_history" }
func (t *SlackChannelHistoryTool) Description() string {
	return "Get recent messages from a Slack channel"
}

func (t *SlackChannelHistoryTool) Execute(ctx context.Context, input SlackChannelHistoryInput) (*agent.ToolResult, error) {
	if input.ChannelID == "" {
		return agent.ErrorResult("channel_id is required"), nil
	}
	args := map[string]any{"channel_id": input.ChannelID}
	if input.Limit != nil {
		args["limit"] = *input.Limit
	}
	return callService(ctx, t.conn, slackService, "slack_get_channel_history", args, defaultCallBudget)
}
