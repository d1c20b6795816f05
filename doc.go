// Package connector implements a process-per-service MCP client: it spawns
// local MCP tool servers as child processes and speaks line-delimited
// JSON-RPC 2.0 to them over stdin/stdout.
//
// The package provides three layers, composed bottom-up:
//
//   - [Process] owns one spawned child: environment overlay, pipe wiring,
//     liveness polling, and graceful-then-forced termination.
//   - [Client] owns the protocol on top of one Process: the mandatory
//     initialize/initialized handshake and single synchronous Call exchanges.
//   - [Connector] is the facade tool wrappers hold: Start, Call, CallTool,
//     ListTools, Status, Stop, StopAll, keyed by configured service name.
//
// # Quick Start
//
//	c, err := connector.New(connector.WithConfigPath("mcp/mcp_servers.json"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	result, err := c.CallTool(ctx, "time", "get_current_time",
//	    map[string]any{"timezone": "UTC"})
//
// The protocol is strictly synchronous: every request uses the literal id 1
// and is matched with the next line the server writes. One outstanding call
// per service at a time; callers that share a Connector across goroutines
// must serialize calls to the same service name themselves.
//
// # Sub-packages
//
//   - [agent] runs an Anthropic tool-calling loop over bridged MCP tools.
//   - [tools] provides typed wrappers for the Excel, Slack and Time servers
//     plus a local calculator.
package connector
