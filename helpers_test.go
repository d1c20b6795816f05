package connector_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	connector "github.com/armatrix/mcp-connect-go"
)

// Fake MCP servers implemented as /bin/sh one-liners. They speak just
// enough line-delimited JSON-RPC for the tests: match on the method
// substring of each request line and answer with a canned response.

const handshakeReply = `{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05","capabilities":{"tools":{}},"serverInfo":{"name":"fake-server","version":"1.0.0"}}}`

// echoServerScript handshakes and answers every call with {"ok":true}.
const echoServerScript = `
while IFS= read -r line; do
  case "$line" in
    *'"method":"initialize"'*) echo '` + handshakeReply + `' ;;
    *'"method":"notifications/initialized"'*) ;;
    *'"method":"tools/list"'*) echo '{"jsonrpc":"2.0","id":1,"result":{"tools":[{"name":"echo","description":"Echo a message","inputSchema":{"type":"object","properties":{"text":{"type":"string"}}}}]}}' ;;
    *) echo '{"jsonrpc":"2.0","id":1,"result":{"ok":true}}' ;;
  esac
done`

// garbageServerScript answers the handshake with an unparsable line.
const garbageServerScript = `
while IFS= read -r line; do
  echo 'this is not json'
done`

// silentServerScript handshakes but never answers a call.
const silentServerScript = `
while IFS= read -r line; do
  case "$line" in
    *'"method":"initialize"'*) echo '` + handshakeReply + `' ;;
    *) ;;
  esac
done`

// errorServerScript handshakes and answers every call with a JSON-RPC error.
const errorServerScript = `
while IFS= read -r line; do
  case "$line" in
    *'"method":"initialize"'*) echo '` + handshakeReply + `' ;;
    *'"method":"notifications/initialized"'*) ;;
    *) echo '{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found","data":{"hint":"no such tool"}}}' ;;
  esac
done`

// invalidReplyServerScript handshakes, then answers calls with garbage.
const invalidReplyServerScript = `
while IFS= read -r line; do
  case "$line" in
    *'"method":"initialize"'*) echo '` + handshakeReply + `' ;;
    *'"method":"notifications/initialized"'*) ;;
    *) echo 'garbage response' ;;
  esac
done`

// dyingServerScript handshakes, then exits as soon as the initialized
// notification arrives.
const dyingServerScript = `
IFS= read -r line
echo '` + handshakeReply + `'
IFS= read -r line
exit 0`

func shConfig(name, script string) connector.ServiceConfig {
	return connector.ServiceConfig{
		Name:    name,
		Command: "/bin/sh",
		Args:    []string{"-c", script},
	}
}

// writeRegistry writes a temp mcp_servers.json mapping each name to a
// /bin/sh fake running the given script, and returns the file path.
func writeRegistry(t *testing.T, scripts map[string]string) string {
	t.Helper()

	servers := make(map[string]map[string]any, len(scripts))
	for name, script := range scripts {
		servers[name] = map[string]any{
			"command": "/bin/sh",
			"args":    []string{"-c", script},
		}
	}
	doc := map[string]any{"mcpServers": servers}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "mcp_servers.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
