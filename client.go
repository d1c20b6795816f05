package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Client speaks the MCP wire protocol to one spawned Process. It moves
// through exactly two states: created (handshake pending) and ready.
// A failed handshake leaves the client permanently unusable; terminate the
// process and spawn a fresh one instead of retrying.
//
// Call is strictly synchronous: one request line out, the next stdout line
// back. The client holds no correlation table (every request carries id 1),
// so callers must not issue a second Call before the first returns.
type Client struct {
	proc *Process

	clientName       string
	clientVersion    string
	handshakeTimeout time.Duration
	callTimeout      time.Duration

	ready bool
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	clientName       string
	clientVersion    string
	handshakeTimeout time.Duration
	callTimeout      time.Duration
}

func resolveClientOptions(opts []ClientOption) clientOptions {
	o := clientOptions{
		clientName:       DefaultClientName,
		clientVersion:    DefaultClientVersion,
		handshakeTimeout: DefaultHandshakeTimeout,
		callTimeout:      DefaultCallTimeout,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithClientName sets the name reported in the initialize clientInfo.
func WithClientName(name string) ClientOption {
	return func(o *clientOptions) { o.clientName = name }
}

// WithClientVersion sets the version reported in the initialize clientInfo.
func WithClientVersion(version string) ClientOption {
	return func(o *clientOptions) { o.clientVersion = version }
}

// WithHandshakeTimeout bounds the wait for the initialize response.
func WithHandshakeTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) { o.handshakeTimeout = d }
}

// WithCallTimeout bounds the wait for each call response.
func WithCallTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) { o.callTimeout = d }
}

// NewClient wraps a spawned process in a protocol client. The handshake is
// not performed here; call Handshake before the first Call.
func NewClient(proc *Process, opts ...ClientOption) *Client {
	o := resolveClientOptions(opts)
	return &Client{
		proc:             proc,
		clientName:       o.clientName,
		clientVersion:    o.clientVersion,
		handshakeTimeout: o.handshakeTimeout,
		callTimeout:      o.callTimeout,
	}
}

// Process returns the underlying process handle.
func (c *Client) Process() *Process {
	return c.proc
}

// Ready reports whether the handshake has completed.
func (c *Client) Ready() bool {
	return c.ready
}

// Handshake performs the two-step MCP initialization: an initialize request
// answered by one result line, then a notifications/initialized
// notification. Servers buffer their first response and will hang silently
// on the first tools/call without this exact greeting, which is why the
// handshake runs at start time rather than lazily.
//
// On failure the error wraps ErrHandshakeFailed and includes the process's
// recent stderr output.
func (c *Client) Handshake(ctx context.Context) error {
	init := newRequest("initialize", initializeParams{
		ProtocolVersion: ProtocolVersion,
		ClientInfo: clientInfo{
			Name:    c.clientName,
			Version: c.clientVersion,
		},
	})
	data, err := json.Marshal(init)
	if err != nil {
		return fmt.Errorf("%w: marshal initialize: %v", ErrHandshakeFailed, err)
	}
	if err := c.proc.writeLine(data); err != nil {
		return fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}

	line, err := c.proc.readLine(ctx, c.handshakeTimeout)
	if err != nil {
		return c.handshakeError("no initialize response: %v", err)
	}

	var resp rpcResponse
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		return c.handshakeError("initialize response is not JSON: %q", line)
	}
	if len(resp.Result) == 0 {
		return c.handshakeError("initialize response has no result: %s", line)
	}

	note, err := json.Marshal(newNotification("notifications/initialized", nil))
	if err != nil {
		return fmt.Errorf("%w: marshal initialized: %v", ErrHandshakeFailed, err)
	}
	if err := c.proc.writeLine(note); err != nil {
		return fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}

	c.ready = true
	return nil
}

func (c *Client) handshakeError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if tail := c.proc.StderrTail(); len(tail) > 0 {
		msg += "; stderr: " + strings.Join(tail, " | ")
	}
	return fmt.Errorf("%w: %s: %s", ErrHandshakeFailed, c.proc.Name(), msg)
}

// Call sends one JSON-RPC request and reads the next response line. The
// read deadline is the configured call timeout, shortened by the context's
// deadline when that is earlier; an already-expired context fails before
// anything is written. Cancelling the context abandons the wait; it cannot
// recall a request line already written.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	if !c.proc.Alive() {
		return nil, fmt.Errorf("%w: %s", ErrServerNotRunning, c.proc.Name())
	}
	if !c.ready {
		return nil, fmt.Errorf("%w: %s", ErrNotReady, c.proc.Name())
	}

	timeout := c.callTimeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			// Already expired; fail as a cancellation before any I/O so
			// no request line is written whose response nobody reads.
			<-ctx.Done()
			return nil, ctx.Err()
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	req := newRequest(method, params)
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("connector: marshal %s request: %w", method, err)
	}
	if err := c.proc.writeLine(data); err != nil {
		return nil, err
	}

	line, err := c.proc.readLine(ctx, timeout)
	if err != nil {
		return nil, err
	}

	var resp rpcResponse
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %q", ErrInvalidResponse, c.proc.Name(), line)
	}

	if len(resp.Error) > 0 {
		remote := &RemoteError{Raw: resp.Error}
		// A malformed error object still surfaces as a RemoteError with
		// the raw payload attached.
		_ = json.Unmarshal(resp.Error, remote)
		return nil, remote
	}
	return resp.Result, nil
}

// CallTool is sugar for the tools/call method.
func (c *Client) CallTool(ctx context.Context, tool string, args any) (json.RawMessage, error) {
	if args == nil {
		args = map[string]any{}
	}
	return c.Call(ctx, "tools/call", toolCallParams{Name: tool, Arguments: args})
}
