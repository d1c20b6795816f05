package connector_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	connector "github.com/armatrix/mcp-connect-go"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConnector(t *testing.T, scripts map[string]string, opts ...connector.Option) *connector.Connector {
	t.Helper()
	path := writeRegistry(t, scripts)
	opts = append([]connector.Option{
		connector.WithConfigPath(path),
		connector.WithLogger(quietLogger()),
	}, opts...)

	c, err := connector.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewMissingConfig(t *testing.T) {
	_, err := connector.New(
		connector.WithConfigPath(filepath.Join(t.TempDir(), "absent.json")),
		connector.WithLogger(quietLogger()),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, connector.ErrConfigNotFound)
}

func TestStartStopLifecycle(t *testing.T) {
	c := newTestConnector(t, map[string]string{"echo": echoServerScript})
	ctx := context.Background()

	assert.Equal(t, connector.StatusStopped, c.Status("echo"))

	require.NoError(t, c.Start(ctx, "echo"))
	assert.Equal(t, connector.StatusRunning, c.Status("echo"))

	// Starting an already-running service is a no-op success.
	require.NoError(t, c.Start(ctx, "echo"))
	assert.Equal(t, connector.StatusRunning, c.Status("echo"))

	require.NoError(t, c.Stop("echo"))
	assert.Equal(t, connector.StatusStopped, c.Status("echo"))

	// Stopping a stopped service is also a no-op success.
	require.NoError(t, c.Stop("echo"))
}

func TestStatusNotConfigured(t *testing.T) {
	c := newTestConnector(t, map[string]string{"echo": echoServerScript})

	assert.Equal(t, connector.StatusNotConfigured, c.Status("unknown"))
	assert.ErrorIs(t, c.Start(context.Background(), "unknown"), connector.ErrServerNotConfigured)
	assert.ErrorIs(t, c.Stop("unknown"), connector.ErrServerNotConfigured)
}

func TestCallAutoStarts(t *testing.T) {
	c := newTestConnector(t, map[string]string{"echo": echoServerScript})
	ctx := context.Background()

	require.Equal(t, connector.StatusStopped, c.Status("echo"))

	result, err := c.CallTool(ctx, "echo", "echo", map[string]any{"text": "hi"})
	require.NoError(t, err)

	var parsed map[string]bool
	require.NoError(t, json.Unmarshal(result, &parsed))
	assert.True(t, parsed["ok"])
	assert.Equal(t, connector.StatusRunning, c.Status("echo"))
}

func TestStartHandshakeFailure(t *testing.T) {
	c := newTestConnector(t, map[string]string{"garbage": garbageServerScript})

	err := c.Start(context.Background(), "garbage")
	require.Error(t, err)
	assert.ErrorIs(t, err, connector.ErrHandshakeFailed)

	// Nothing may remain registered as running after a failed handshake.
	assert.Equal(t, connector.StatusStopped, c.Status("garbage"))
}

func TestCallTimeoutLeavesServerRunning(t *testing.T) {
	c := newTestConnector(t, map[string]string{"silent": silentServerScript},
		connector.WithClientOptions(connector.WithCallTimeout(200*time.Millisecond)))
	ctx := context.Background()

	require.NoError(t, c.Start(ctx, "silent"))

	_, err := c.CallTool(ctx, "silent", "anything", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, connector.ErrNoResponse)

	// A timed-out call is not evidence the process died.
	assert.Equal(t, connector.StatusRunning, c.Status("silent"))
}

func TestStatusPurgesDeadProcess(t *testing.T) {
	c := newTestConnector(t, map[string]string{"dying": dyingServerScript})
	ctx := context.Background()

	require.NoError(t, c.Start(ctx, "dying"))

	// The server exits right after the handshake; Status must detect the
	// dead process and purge it.
	require.Eventually(t, func() bool {
		return c.Status("dying") == connector.StatusStopped
	}, 5*time.Second, 10*time.Millisecond)

	// A fresh start after the purge is allowed.
	require.NoError(t, c.Start(ctx, "dying"))
}

func TestListTools(t *testing.T) {
	c := newTestConnector(t, map[string]string{"echo": echoServerScript})

	tools, err := c.ListTools(context.Background(), "echo")
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "echo", tools[0].Name)
	assert.Equal(t, "Echo a message", tools[0].Description)
	assert.NotEmpty(t, tools[0].InputSchema)
}

func TestStopAllLeavesNoChildren(t *testing.T) {
	c := newTestConnector(t, map[string]string{
		"one": echoServerScript,
		"two": echoServerScript,
	})
	ctx := context.Background()

	require.NoError(t, c.Start(ctx, "one"))
	require.NoError(t, c.Start(ctx, "two"))
	assert.Equal(t, connector.StatusRunning, c.Status("one"))
	assert.Equal(t, connector.StatusRunning, c.Status("two"))

	require.NoError(t, c.StopAll())

	statuses := c.Statuses()
	assert.Equal(t, connector.StatusStopped, statuses["one"])
	assert.Equal(t, connector.StatusStopped, statuses["two"])
}

func TestCloseStopsEverything(t *testing.T) {
	path := writeRegistry(t, map[string]string{"echo": echoServerScript})
	c, err := connector.New(
		connector.WithConfigPath(path),
		connector.WithLogger(quietLogger()),
	)
	require.NoError(t, err)

	require.NoError(t, c.Start(context.Background(), "echo"))
	require.NoError(t, c.Close())
	assert.Equal(t, connector.StatusStopped, c.Status("echo"))
}

func TestWithRegistryBypassesFile(t *testing.T) {
	reg, err := connector.LoadRegistry(writeRegistry(t, map[string]string{"echo": echoServerScript}))
	require.NoError(t, err)

	c, err := connector.New(
		connector.WithRegistry(reg),
		connector.WithLogger(quietLogger()),
	)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, []string{"echo"}, c.Registry().Names())
}

func TestIsTransportError(t *testing.T) {
	c := newTestConnector(t, map[string]string{"garbage": garbageServerScript})

	err := c.Start(context.Background(), "garbage")
	require.Error(t, err)
	assert.True(t, connector.IsTransportError(err))

	remote := &connector.RemoteError{Code: -32000, Message: "boom"}
	assert.False(t, connector.IsTransportError(remote))
}
