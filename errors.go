package connector

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors returned by the registry, process and call layers.
// All failures wrap one of these, so errors.Is works across wrapping.
var (
	// ErrConfigNotFound is returned when the registry config file does not exist.
	ErrConfigNotFound = errors.New("connector: config file not found")

	// ErrConfigMalformed is returned when the registry config cannot be
	// parsed or a server entry is missing its command.
	ErrConfigMalformed = errors.New("connector: config malformed")

	// ErrServerNotConfigured is returned when a service name has no entry
	// in the loaded registry.
	ErrServerNotConfigured = errors.New("connector: server not configured")

	// ErrSpawnFailed is returned when the server executable cannot be
	// launched. No process exists after this failure.
	ErrSpawnFailed = errors.New("connector: spawn failed")

	// ErrHandshakeFailed is returned when the initialize exchange does not
	// produce a valid result. The process must be terminated, not reused.
	ErrHandshakeFailed = errors.New("connector: handshake failed")

	// ErrServerNotRunning is returned when a call is attempted against a
	// process that has exited. No I/O is attempted.
	ErrServerNotRunning = errors.New("connector: server not running")

	// ErrNotReady is returned when Call is invoked before a successful
	// handshake on the same client.
	ErrNotReady = errors.New("connector: handshake not completed")

	// ErrNoResponse is returned when no line arrives on stdout within the
	// call deadline, or stdout closed before a line was produced.
	ErrNoResponse = errors.New("connector: no response from server")

	// ErrInvalidResponse is returned when the server produced a line that
	// is not valid JSON. The wrapped message carries the raw text.
	ErrInvalidResponse = errors.New("connector: invalid response")
)

// RemoteError is a JSON-RPC error reported by the server itself, passed
// through verbatim so tool wrappers can inspect domain-specific content.
type RemoteError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`

	// Raw is the complete error object as received on the wire.
	Raw json.RawMessage `json:"-"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("connector: remote error %d: %s", e.Code, e.Message)
}
