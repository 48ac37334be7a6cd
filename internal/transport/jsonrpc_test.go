package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	body := bytes.NewBufferString(`{"jsonrpc":"2.0","method":"quick_log","params":{"minutes":30},"id":1}`)
	req, err := ParseRequest(body)
	require.NoError(t, err)
	require.Equal(t, "2.0", req.JSONRPC)
	require.Equal(t, "quick_log", req.Method)
	require.Equal(t, json.RawMessage(`{"minutes":30}`), req.Params)
}

func TestParseRequest_Invalid(t *testing.T) {
	body := bytes.NewBufferString(`{"jsonrpc":"2.0","id":1}`)
	_, err := ParseRequest(body)
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = ParseRequest(bytes.NewBufferString(`{"jsonrpc":`))
	require.ErrorIs(t, err, ErrParse)
	require.NotErrorIs(t, err, ErrInvalidRequest)
}

func TestErrorFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantData *ErrorData
		known    bool
	}{
		{name: "parse", err: fmt.Errorf("%w: eof", ErrParse), wantCode: CodeParse, known: true},
		{name: "invalid request", err: ErrInvalidRequest, wantCode: CodeInvalidRequest, known: true},
		{name: "unknown method", err: domainError{code: "UNKNOWN_METHOD"}, wantCode: CodeMethodNotFound,
			wantData: &ErrorData{Code: "UNKNOWN_METHOD", RecoveryHint: "try again"}, known: true},
		{name: "invalid input", err: domainError{code: "INVALID_INPUT"}, wantCode: CodeInvalidParams,
			wantData: &ErrorData{Code: "INVALID_INPUT", RecoveryHint: "try again"}, known: true},
		{name: "wrapped domain", err: fmt.Errorf("saving: %w", domainError{code: "LOG_HELD"}), wantCode: CodeDomain,
			wantData: &ErrorData{Code: "LOG_HELD", RecoveryHint: "try again"}, known: true},
		{name: "internal", err: errors.New("disk full"), wantCode: CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rpcErr, known := ErrorFor(tt.err)
			require.Equal(t, tt.known, known)
			require.Equal(t, tt.wantCode, rpcErr.Code)
			if tt.wantData == nil {
				require.Nil(t, rpcErr.Data)
				return
			}
			require.Equal(t, *tt.wantData, rpcErr.Data)
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	rpcErr, _ := ErrorFor(domainError{code: "INVALID_INPUT"})
	writeError(rec, 1, rpcErr)

	require.Equal(t, 200, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp struct {
		Error struct {
			Code    int       `json:"code"`
			Message string    `json:"message"`
			Data    ErrorData `json:"data"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, CodeInvalidParams, resp.Error.Code)
	require.Equal(t, "message for INVALID_INPUT", resp.Error.Message)
	require.Equal(t, ErrorData{Code: "INVALID_INPUT", RecoveryHint: "try again"}, resp.Error.Data)
}
