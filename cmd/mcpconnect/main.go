// Command mcpconnect manages and exercises the MCP servers declared in an
// mcp_servers config file: list them, start and stop them, inspect their
// tools, call tools directly, or hand them to an Anthropic agent loop.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
