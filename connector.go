package connector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ToolInfo describes a tool discovered from an MCP server via tools/list.
type ToolInfo struct {
	// Name is the tool's name as reported by the server.
	Name string `json:"name"`

	// Description is a human-readable description of the tool.
	Description string `json:"description,omitempty"`

	// InputSchema is the raw JSON schema for the tool's input.
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// Connector is the facade tool wrappers hold. It owns one handshaken
// process per started service, keyed by configured name.
//
// The process table is guarded for concurrent map access, but the I/O path
// is not: concurrent calls to the same service name must be serialized by
// the caller, and Stop must not race an in-flight Call to the same name.
// Calls to distinct names are fully independent.
//
// Acquire a Connector with New and release it with Close; Close stops every
// process the facade started.
type Connector struct {
	registry *Registry
	logger   *slog.Logger
	opts     connectorOptions

	mu     sync.RWMutex
	active map[string]*Client
}

// New creates a Connector, loading the service registry eagerly from the
// configured path (DefaultConfigPath unless overridden by WithConfigPath or
// replaced wholesale by WithRegistry).
func New(opts ...Option) (*Connector, error) {
	o := resolveOptions(opts)

	reg := o.registry
	if reg == nil {
		var err error
		reg, err = LoadRegistry(o.configPath)
		if err != nil {
			return nil, err
		}
	}

	c := &Connector{
		registry: reg,
		logger:   o.logger,
		opts:     o,
		active:   make(map[string]*Client),
	}
	c.logger.Debug("connector created", "servers", reg.Len())
	return c, nil
}

// Registry returns the loaded service registry.
func (c *Connector) Registry() *Registry {
	return c.registry
}

// Start spawns and handshakes the named service. Starting an already
// running service is a no-op success. A previously started process that
// has died on its own is purged before the new spawn. On handshake failure
// the child is terminated, nothing is registered, and the error is
// returned.
func (c *Connector) Start(ctx context.Context, name string) error {
	cfg, ok := c.registry.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrServerNotConfigured, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.active[name]; ok {
		if client.Process().Alive() {
			return nil
		}
		c.logger.Warn("server exited on its own",
			"server", name, "exit_code", client.Process().ExitCode())
		delete(c.active, name)
	}

	proc, err := Spawn(cfg, c.opts.spawnOptions...)
	if err != nil {
		return err
	}
	c.logger.Info("server started", "server", name, "pid", proc.Pid())

	client := NewClient(proc, c.opts.clientOptions...)
	if err := client.Handshake(ctx); err != nil {
		_ = proc.Terminate()
		return err
	}
	c.logger.Debug("handshake complete", "server", name)

	c.active[name] = client
	return nil
}

// client returns the live client for name, auto-starting the service when
// it is not running.
func (c *Connector) client(ctx context.Context, name string) (*Client, error) {
	c.mu.RLock()
	cl, ok := c.active[name]
	c.mu.RUnlock()
	if ok && cl.Process().Alive() {
		return cl, nil
	}

	if err := c.Start(ctx, name); err != nil {
		return nil, err
	}

	c.mu.RLock()
	cl = c.active[name]
	c.mu.RUnlock()
	if cl == nil {
		return nil, fmt.Errorf("%w: %s", ErrServerNotRunning, name)
	}
	return cl, nil
}

// Call sends one JSON-RPC request to the named service, starting it first
// if necessary, and returns the raw result payload. One outstanding call
// per service name; see the type comment.
func (c *Connector) Call(ctx context.Context, name, method string, params any) (json.RawMessage, error) {
	cl, err := c.client(ctx, name)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("call", "server", name, "method", method)
	return cl.Call(ctx, method, params)
}

// CallTool invokes a named tool on the service via tools/call.
func (c *Connector) CallTool(ctx context.Context, name, tool string, args any) (json.RawMessage, error) {
	cl, err := c.client(ctx, name)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("call tool", "server", name, "tool", tool)
	return cl.CallTool(ctx, tool, args)
}

// ListTools returns the tools the named service advertises via tools/list.
func (c *Connector) ListTools(ctx context.Context, name string) ([]ToolInfo, error) {
	result, err := c.Call(ctx, name, "tools/list", nil)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Tools []ToolInfo `json:"tools"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %s: tools/list result: %q", ErrInvalidResponse, name, result)
	}
	return parsed.Tools, nil
}

// Status reports the lifecycle state of a configured service. A process
// found dead is purged and reported as stopped, so the next Start spawns a
// fresh one.
func (c *Connector) Status(name string) Status {
	if _, ok := c.registry.Get(name); !ok {
		return StatusNotConfigured
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	client, ok := c.active[name]
	if !ok {
		return StatusStopped
	}
	if !client.Process().Alive() {
		c.logger.Warn("server exited on its own",
			"server", name, "exit_code", client.Process().ExitCode())
		delete(c.active, name)
		return StatusStopped
	}
	return StatusRunning
}

// Statuses reports the status of every configured service.
func (c *Connector) Statuses() map[string]Status {
	statuses := make(map[string]Status, c.registry.Len())
	for _, name := range c.registry.Names() {
		statuses[name] = c.Status(name)
	}
	return statuses
}

// Stop terminates the named service. Stopping a service that is not
// running is a no-op success.
func (c *Connector) Stop(name string) error {
	if _, ok := c.registry.Get(name); !ok {
		return fmt.Errorf("%w: %s", ErrServerNotConfigured, name)
	}

	c.mu.Lock()
	client, ok := c.active[name]
	delete(c.active, name)
	c.mu.Unlock()

	if !ok {
		return nil
	}
	if err := client.Process().Terminate(); err != nil {
		// Best-effort: log and swallow, never raise past teardown.
		c.logger.Warn("terminate failed", "server", name, "error", err)
		return nil
	}
	c.logger.Info("server stopped", "server", name)
	return nil
}

// StopAll terminates every running service. Cleanup failures are logged
// and swallowed.
func (c *Connector) StopAll() error {
	c.mu.Lock()
	clients := make(map[string]*Client, len(c.active))
	for name, client := range c.active {
		clients[name] = client
	}
	c.active = make(map[string]*Client)
	c.mu.Unlock()

	for name, client := range clients {
		if err := client.Process().Terminate(); err != nil {
			c.logger.Warn("terminate failed", "server", name, "error", err)
			continue
		}
		c.logger.Info("server stopped", "server", name)
	}
	return nil
}

// Close releases the facade, stopping every process it started. It
// implements io.Closer so a Connector can be managed with defer.
func (c *Connector) Close() error {
	return c.StopAll()
}

// IsTransportError reports whether err is one of the connector's
// transport-level failures, as opposed to a RemoteError reported by the
// server itself.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrSpawnFailed) ||
		errors.Is(err, ErrHandshakeFailed) ||
		errors.Is(err, ErrServerNotRunning) ||
		errors.Is(err, ErrNotReady) ||
		errors.Is(err, ErrNoResponse) ||
		errors.Is(err, ErrInvalidResponse)
}
