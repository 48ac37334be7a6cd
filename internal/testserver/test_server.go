// Package testserver runs a complete chronos HTTP server for end-to-end tests.
package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/chronos/internal/app"
	"github.com/rpggio/chronos/internal/config"
	"github.com/rpggio/chronos/internal/mcp"
	"github.com/rpggio/chronos/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	Token  string
}

// RPCResponse is a decoded JSON-RPC response from /rpc.
type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      any             `json:"id,omitempty"`
}

type RPCError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// New starts a server backed by an in-memory database. token is registered
// as a valid API key for both /rpc and /mcp.
func New(t *testing.T, token string) *TestServer {
	t.Helper()
	ctx := context.Background()

	cfg := config.Config{
		DB:        config.DBConfig{Path: ":memory:"},
		Storage:   config.StorageConfig{Driver: config.DriverSQLite},
		Transport: config.TransportConfig{Mode: config.TransportHTTP},
		Auth:      config.AuthConfig{Enabled: true},
		Tracker:   config.TrackerConfig{Timezone: "UTC"},
	}
	a, err := app.Open(ctx, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, a.Keys.Create(ctx, token, "test"))

	router := transport.NewServer(
		mcp.NewHandler(a.Services(), a.Location, nil),
		transport.AuthMiddleware(a.Keys),
		nil,
	)

	mcpServer := mcp.NewServer(mcp.Config{
		Services:      a.Services(),
		Location:      a.Location,
		Resolver:      a.Keys,
		AuthEnabled:   true,
		TransportMode: config.TransportHTTP,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/*", mcpHandler)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
	})

	return &TestServer{Server: server, App: a, Token: token}
}

// Call posts one JSON-RPC request to /rpc with the server token.
func (ts *TestServer) Call(t *testing.T, method string, params any) RPCResponse {
	t.Helper()
	return ts.CallWithToken(t, ts.Token, method, params)
}

// CallWithToken posts one JSON-RPC request to /rpc. An empty token sends no
// Authorization header. Non-200 responses fail the test.
func (ts *TestServer) CallWithToken(t *testing.T, token, method string, params any) RPCResponse {
	t.Helper()

	payload := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      1,
	}
	if params != nil {
		payload["params"] = params
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp := ts.post(t, token, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result RPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// PostStatus posts a raw body to /rpc and returns only the status code.
func (ts *TestServer) PostStatus(t *testing.T, token string, body []byte) int {
	t.Helper()
	resp := ts.post(t, token, body)
	resp.Body.Close()
	return resp.StatusCode
}

func (ts *TestServer) post(t *testing.T, token string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/rpc", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// ConnectMCP opens an MCP client session over streamable HTTP that sends
// token as its bearer credential.
func (ts *TestServer) ConnectMCP(t *testing.T, token string) *sdkmcp.ClientSession {
	t.Helper()
	httpClient := &http.Client{Transport: bearerTransport{token: token, base: http.DefaultTransport}}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: httpClient,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if b.token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	return b.base.RoundTrip(req)
}
