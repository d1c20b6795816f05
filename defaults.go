package connector

import "time"

// Protocol and timing defaults.
const (
	// DefaultConfigPath is the registry file loaded when no path is given.
	DefaultConfigPath = "mcp/mcp_servers.json"

	// ProtocolVersion is the MCP protocol revision sent in initialize.
	ProtocolVersion = "2024-11-05"

	// DefaultClientName identifies this connector in the initialize clientInfo.
	DefaultClientName = "mcp-connect"

	// DefaultClientVersion is the clientInfo version string.
	DefaultClientVersion = "1.0.0"

	// DefaultHandshakeTimeout bounds the wait for the initialize response.
	DefaultHandshakeTimeout = 10 * time.Second

	// DefaultCallTimeout bounds the wait for a call response.
	DefaultCallTimeout = 30 * time.Second

	// DefaultTerminateGrace is how long Terminate waits for voluntary exit
	// after SIGTERM before force-killing.
	DefaultTerminateGrace = 5 * time.Second

	// DefaultStderrTailLines is the number of recent stderr lines kept per
	// process for diagnostics.
	DefaultStderrTailLines = 32
)

// maxLineBytes caps a single stdout line; servers returning spreadsheet
// cell ranges can produce long result lines.
const maxLineBytes = 10 * 1024 * 1024
