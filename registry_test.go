package connector_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	connector "github.com/armatrix/mcp-connect-go"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mcp_servers.json", `{
		"mcpServers": {
			"excel": {
				"command": "uvx",
				"args": ["excel-mcp-server", "stdio"],
				"env": {"EXCEL_FILES_PATH": "/tmp/excel"}
			},
			"time": {"command": "uvx", "args": ["mcp-server-time"]}
		}
	}`)

	reg, err := connector.LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"excel", "time"}, reg.Names())

	excel, ok := reg.Get("excel")
	require.True(t, ok)
	assert.Equal(t, "excel", excel.Name)
	assert.Equal(t, "uvx", excel.Command)
	assert.Equal(t, []string{"excel-mcp-server", "stdio"}, excel.Args)
	assert.Equal(t, map[string]string{"EXCEL_FILES_PATH": "/tmp/excel"}, excel.Env)

	_, ok = reg.Get("slack")
	assert.False(t, ok)
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mcp_servers.yaml", `
mcpServers:
  time:
    command: uvx
    args: [mcp-server-time]
    env:
      TZ: UTC
`)

	reg, err := connector.LoadRegistry(path)
	require.NoError(t, err)

	cfg, ok := reg.Get("time")
	require.True(t, ok)
	assert.Equal(t, "uvx", cfg.Command)
	assert.Equal(t, map[string]string{"TZ": "UTC"}, cfg.Env)
}

func TestLoadRegistryMissingFile(t *testing.T) {
	_, err := connector.LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, connector.ErrConfigNotFound)
}

func TestLoadRegistryMalformedJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mcp_servers.json", `{"mcpServers": {`)

	_, err := connector.LoadRegistry(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, connector.ErrConfigMalformed)
}

func TestLoadRegistryEmptyCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mcp_servers.json", `{
		"mcpServers": {"broken": {"args": ["stdio"]}}
	}`)

	_, err := connector.LoadRegistry(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, connector.ErrConfigMalformed)
}

func TestDiscoverConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "deep/nested/mcp_servers.json", `{"mcpServers":{}}`)
	shallow := writeFile(t, root, "sub/mcp_servers.yaml", `mcpServers: {}`)

	found, err := connector.DiscoverConfig(root)
	require.NoError(t, err)
	assert.Equal(t, shallow, found)
}

func TestDiscoverConfigNotFound(t *testing.T) {
	_, err := connector.DiscoverConfig(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, connector.ErrConfigNotFound)
}
