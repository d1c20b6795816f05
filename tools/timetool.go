package tools

import (
	"context"

	connector "github.com/armatrix/mcp-connect-go"
	"github.com/armatrix/mcp-connect-go/agent"
)

// timeService is the registry name of the time MCP server.
const timeService = "time"

// TimeCurrentInput is the input for time_current.
type TimeCurrentInput struct {
	Timezone string `json:"timezone" jsonschema:"required,description=IANA timezone name (e.g. UTC or Asia/Tokyo)"`
}

// TimeCurrentTool reports the current time in a timezone.
type TimeCurrentTool struct {
	conn *connector.Connector
}

var _ agent.Tool[TimeCurrentInput] = (*TimeCurrentTool)(nil)

// NewTimeCurrentTool binds the tool to a connector.
func NewTimeCurrentTool(conn *connector.Connector) *TimeCurrentTool {
	return &TimeCurrentTool{conn: conn}
}

func (t *TimeCurrentTool) Name() string { return "time_current" }
func (t *TimeCurrentTool) Description() string {
	return "Get the current time in a given timezone"
}

func (t *TimeCurrentTool) Execute(ctx context.Context, input TimeCurrentInput) (*agent.ToolResult, error) {
	if input.Timezone == "" {
		return agent.ErrorResult("timezone is required"), nil
	}
	return callService(ctx, t.conn, timeService, "get_current_time",
		map[string]any{"timezone": input.Timezone}, defaultCallBudget)
}

// TimeConvertInput is the input for time_convert.
type TimeConvertInput struct {
	Time           string `json:"time" jsonschema:"required,description=Time to convert in 24-hour HH:MM format"`
	SourceTimezone string `json:"source_timezone" jsonschema:"required,description=IANA timezone the time is in"`
	TargetTimezone string `json:"target_timezone" jsonschema:"required,description=IANA timezone to convert to"`
}

// TimeConvertTool converts a wall-clock time between timezones.
type TimeConvertTool struct {
	conn *connector.Connector
}

var _ agent.Tool[TimeConvertInput] = (*TimeConvertTool)(nil)

// NewTimeConvertTool binds the tool to a connector.
func NewTimeConvertTool(conn *connector.Connector) *TimeConvertTool {
	return &TimeConvertTool{conn: conn}
}

func (t *TimeConvertTool) Name() string { return "time_convert" }
func (t *TimeConvertTool) Description() string {
	return "Convert a time between timezones"
}

func (t *TimeConvertTool) Execute(ctx context.Context, input TimeConvertInput) (*agent.ToolResult, error) {
	if input.Time == "" || input.SourceTimezone == "" || input.TargetTimezone == "" {
		return agent.ErrorResult("time, source_timezone and target_timezone are required"), nil
	}
	return callService(ctx, t.conn, timeService, "convert_time", map[string]any{
		"time":            input.Time,
		"source_timezone": input.SourceTimezone,
		"target_timezone": input.TargetTimezone,
	}, defaultCallBudget)
}
