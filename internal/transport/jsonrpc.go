package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error codes used on /rpc. Domain failures share CodeDomain and carry
// their stable code in ErrorData.
const (
	CodeParse          = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternal       = -32603
	CodeDomain         = -32000
)

var (
	// ErrParse wraps payloads that are not valid JSON.
	ErrParse = errors.New("parse error")
	// ErrInvalidRequest indicates a payload that is valid JSON but not a
	// JSON-RPC 2.0 request.
	ErrInvalidRequest = errors.New("invalid request")
)

// Domain codes that have a dedicated JSON-RPC code.
var protocolCodes = map[string]int{
	"UNKNOWN_METHOD": CodeMethodNotFound,
	"INVALID_INPUT":  CodeInvalidParams,
}

// codedError is implemented by errors that carry a stable domain code.
type codedError interface {
	error
	CodeValue() string
	MessageValue() string
	RecoveryHintValue() string
}

// Request is one call posted to /rpc.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`
}

// Response carries either a result or an error for one Request.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
	ID      any    `json:"id,omitempty"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorData is attached to errors that carry a domain code.
type ErrorData struct {
	Code         string `json:"code"`
	RecoveryHint string `json:"recovery_hint"`
}

// ParseRequest decodes one call. Malformed JSON wraps ErrParse; anything
// that is not a 2.0 call with a method returns ErrInvalidRequest.
func ParseRequest(body io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		return Request{}, ErrInvalidRequest
	}
	return req, nil
}

// ErrorFor converts a failure into its wire form. Errors with a domain code
// keep it in ErrorData; known reports whether err was one the protocol or
// the domain recognizes. Unknown errors become CodeInternal.
func ErrorFor(err error) (rpcErr *Error, known bool) {
	switch {
	case errors.Is(err, ErrParse):
		return &Error{Code: CodeParse, Message: "parse error"}, true
	case errors.Is(err, ErrInvalidRequest):
		return &Error{Code: CodeInvalidRequest, Message: "invalid request"}, true
	}

	var coded codedError
	if !errors.As(err, &coded) {
		return &Error{Code: CodeInternal, Message: err.Error()}, false
	}
	code, ok := protocolCodes[coded.CodeValue()]
	if !ok {
		code = CodeDomain
	}
	return &Error{
		Code:    code,
		Message: coded.MessageValue(),
		Data: ErrorData{
			Code:         coded.CodeValue(),
			RecoveryHint: coded.RecoveryHintValue(),
		},
	}, true
}

func writeResult(w http.ResponseWriter, id any, result any) {
	writeJSON(w, Response{JSONRPC: "2.0", Result: result, ID: id})
}

func writeError(w http.ResponseWriter, id any, rpcErr *Error) {
	writeJSON(w, Response{JSONRPC: "2.0", Error: rpcErr, ID: id})
}

// Errors are reported in the body, so the status is always 200.
func writeJSON(w http.ResponseWriter, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}
