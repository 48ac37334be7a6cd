package mcp

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type keyResolverStub struct {
	owners map[string]string
}

func (k keyResolverStub) Resolve(_ context.Context, token string) (string, error) {
	return k.owners[token], nil
}

func connect(t *testing.T, cfg Config) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := NewServer(cfg)
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func textOf(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServer_StdioToolsRoundTrip(t *testing.T) {
	f := newFixture(t)
	session := connect(t, Config{Services: f.svc, TransportMode: "stdio"})
	ctx := context.Background()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, len(buildToolCatalog()))

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "start_timer",
		Arguments: map[string]any{"category_id": "2"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var timerResp TimerResponse
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &timerResp))
	require.True(t, timerResp.Running)
	require.Equal(t, "Learning", timerResp.Log.Category.Name)
}

func TestServer_ToolErrorsAreResults(t *testing.T) {
	f := newFixture(t)
	session := connect(t, Config{Services: f.svc, TransportMode: "stdio"})

	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "get_log",
		Arguments: map[string]any{"id": "missing"},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)

	var apiErr APIError
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &apiErr))
	require.Equal(t, "LOG_NOT_FOUND", apiErr.Code)
	require.NotEmpty(t, apiErr.RecoveryHint)
}

func TestServer_DocResources(t *testing.T) {
	f := newFixture(t)
	session := connect(t, Config{Services: f.svc, TransportMode: "stdio"})

	res, err := session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "chronos://docs/workflows/day-grid"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "drag_start")
}

func TestServer_HTTPAuthRequiresBearer(t *testing.T) {
	f := newFixture(t)
	session := connect(t, Config{
		Services:      f.svc,
		TransportMode: "http",
		AuthEnabled:   true,
		Resolver:      keyResolverStub{owners: map[string]string{"secret": "alice"}},
	})

	// In-memory requests carry no headers.
	_, err := session.ListTools(context.Background(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unauthorized")
}
