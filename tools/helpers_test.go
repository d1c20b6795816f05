package tools_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	connector "github.com/armatrix/mcp-connect-go"
)

// fakeServiceScript answers the handshake and echoes every tools/call back
// as an MCP text content block containing the request line, so tests can
// assert on the tool name and arguments that went over the wire.
const fakeServiceScript = `
while IFS= read -r line; do
  case "$line" in
    *'"method":"initialize"'*) echo '{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05","capabilities":{"tools":{}},"serverInfo":{"name":"fake","version":"1.0.0"}}}' ;;
    *'"method":"notifications/initialized"'*) ;;
    *) printf '{"jsonrpc":"2.0","id":1,"result":{"content":[{"type":"text","text":"request: %s"}],"isError":false}}\n' "$(printf '%s' "$line" | sed 's/\\/\\\\/g; s/"/\\"/g')" ;;
  esac
done`

// fakeConnector builds a Connector whose registry maps each given service
// name to the fake /bin/sh MCP server.
func fakeConnector(t *testing.T, services ...string) *connector.Connector {
	t.Helper()

	servers := make(map[string]any, len(services))
	for _, name := range services {
		servers[name] = map[string]any{
			"command": "/bin/sh",
			"args":    []string{"-c", fakeServiceScript},
		}
	}
	data, err := json.Marshal(map[string]any{"mcpServers": servers})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "mcp_servers.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := connector.New(
		connector.WithConfigPath(path),
		connector.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}
