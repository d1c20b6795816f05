package connector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ServiceConfig describes how to launch one MCP server. It is immutable
// after registry load.
type ServiceConfig struct {
	// Name is the registry key the service was loaded under.
	Name string `json:"-" yaml:"-"`

	// Command is the executable to spawn.
	Command string `json:"command" yaml:"command"`

	// Args are command-line arguments for the subprocess.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`

	// Env are extra environment variables overlaid onto the inherited
	// environment of the subprocess.
	Env map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// registryDocument is the on-disk shape: {"mcpServers": {name: {...}}}.
type registryDocument struct {
	Servers map[string]ServiceConfig `json:"mcpServers" yaml:"mcpServers"`
}

// Registry holds the loaded service configurations. It is read-only after
// LoadRegistry and safe for concurrent lookups.
type Registry struct {
	services map[string]ServiceConfig
	order    []string
}

// LoadRegistry reads a service registry from a JSON or YAML file. Files
// ending in .yaml or .yml are parsed as YAML; everything else as JSON.
// Returns ErrConfigNotFound if the file does not exist and
// ErrConfigMalformed if it cannot be parsed or an entry has no command.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfigNotFound, path, err)
	}

	var doc registryDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigMalformed, path, err)
	}

	r := &Registry{services: make(map[string]ServiceConfig, len(doc.Servers))}
	for name, cfg := range doc.Servers {
		if cfg.Command == "" {
			return nil, fmt.Errorf("%w: server %q has no command", ErrConfigMalformed, name)
		}
		cfg.Name = name
		r.services[name] = cfg
		r.order = append(r.order, name)
	}
	// Go maps do not preserve document order; sort for a stable listing.
	sort.Strings(r.order)

	return r, nil
}

// Get returns the configuration for a service name.
func (r *Registry) Get(name string) (ServiceConfig, bool) {
	cfg, ok := r.services[name]
	return cfg, ok
}

// Names returns all configured service names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of configured services.
func (r *Registry) Len() int {
	return len(r.services)
}

// DiscoverConfig searches root recursively for a registry file named
// mcp_servers.json, mcp_servers.yaml or mcp_servers.yml and returns the
// path of the shallowest match. Returns ErrConfigNotFound if none exists.
func DiscoverConfig(root string) (string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(root, "**", "mcp_servers.{json,yaml,yml}"))
	if err != nil {
		return "", fmt.Errorf("%w: searching %s: %v", ErrConfigNotFound, root, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no mcp_servers.{json,yaml,yml} under %s", ErrConfigNotFound, root)
	}

	sort.Slice(matches, func(i, j int) bool {
		di := strings.Count(matches[i], string(filepath.Separator))
		dj := strings.Count(matches[j], string(filepath.Separator))
		if di != dj {
			return di < dj
		}
		return matches[i] < matches[j]
	})
	return matches[0], nil
}
