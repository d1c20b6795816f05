package tools_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/armatrix/mcp-connect-go/agent"
	"github.com/armatrix/mcp-connect-go/tools"
)

func TestRegisterAll(t *testing.T) {
	conn := fakeConnector(t, "excel", "slack", "time")
	registry := agent.NewToolRegistry()

	tools.RegisterAll(registry, conn)

	assert.Equal(t, []string{
		"calculator",
		"excel_create_workbook",
		"excel_read_data",
		"excel_write_data",
		"excel_workbook_metadata",
		"slack_list_channels",
		"slack_post_message",
		"slack_get_channel_history",
		"time_current",
		"time_convert",
	}, registry.Names())
}
