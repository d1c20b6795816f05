package connector_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	connector "github.com/armatrix/mcp-connect-go"
)

// TestIntegration_TimeserverEndToEnd runs the real examples/timeserver via
// `go run` and drives a full lifecycle through it: handshake, tools/list,
// a tool call, and teardown. Requires the go tool on PATH.
func TestIntegration_TimeserverEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go tool not on PATH, skipping integration test")
	}

	path := filepath.Join(t.TempDir(), "mcp_servers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "mcpServers": {
    "time": {"command": "go", "args": ["run", "./examples/timeserver"]}
  }
}`), 0o644))

	reg, err := connector.LoadRegistry(path)
	require.NoError(t, err)

	c, err := connector.New(
		connector.WithRegistry(reg),
		connector.WithClientOptions(
			// First start compiles the example; give it room.
			connector.WithHandshakeTimeout(2*time.Minute),
		),
	)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Start(ctx, "time"))
	assert.Equal(t, connector.StatusRunning, c.Status("time"))

	tools, err := c.ListTools(ctx, "time")
	require.NoError(t, err)
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	assert.Contains(t, names, "get_current_time")
	assert.Contains(t, names, "convert_time")

	result, err := c.CallTool(ctx, "time", "get_current_time", map[string]any{
		"timezone": "UTC",
	})
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(result), "T"),
		"expected an RFC3339 timestamp in %s", result)

	require.NoError(t, c.Stop("time"))
	assert.Equal(t, connector.StatusStopped, c.Status("time"))
}
