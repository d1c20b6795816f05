package connector

import "encoding/json"

// Wire-level JSON-RPC 2.0 message shapes. The protocol here is deliberately
// minimal: requests always carry the literal id 1, responses are matched by
// line order rather than by id, and notifications carry no id at all.

const jsonrpcVersion = "2.0"

// fixedRequestID is the id placed on every outbound request. Correlation is
// by strict request-then-read ordering, not by id, so the value never varies.
const fixedRequestID = 1

// rpcRequest is an outbound request expecting exactly one response line.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// rpcNotification is an outbound message with no id and no response.
type rpcNotification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// rpcResponse is one inbound line. Exactly one of Result or Error is set on
// a well-formed response; Result presence distinguishes success.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

func newRequest(method string, params any) rpcRequest {
	return rpcRequest{
		JSONRPC: jsonrpcVersion,
		ID:      fixedRequestID,
		Method:  method,
		Params:  params,
	}
}

func newNotification(method string, params any) rpcNotification {
	return rpcNotification{
		JSONRPC: jsonrpcVersion,
		Method:  method,
		Params:  params,
	}
}

// initializeParams is the payload of the handshake's first message.
type initializeParams struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    clientCapabilities `json:"capabilities"`
	ClientInfo      clientInfo         `json:"clientInfo"`
}

type clientCapabilities struct {
	Tools struct{} `json:"tools"`
}

type clientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// toolCallParams is the payload of a tools/call request.
type toolCallParams struct {
	Name      string `json:"name"`
	Arguments any    `json:"arguments"`
}
