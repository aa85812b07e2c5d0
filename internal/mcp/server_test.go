package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/stackdraft/canon/internal/domain/project"
)

func newTestSDKServer() *sdkmcp.Server {
	projects := defaultProjectStub()
	projects.createFn = func(_ context.Context, _ string, req project.CreateRequest) (*project.Project, error) {
		return &project.Project{ID: "p1", Name: req.Name}, nil
	}
	projects.listFn = func(_ context.Context, _ string) ([]project.ProjectSummary, error) {
		return []project.ProjectSummary{}, nil
	}

	return NewServer(Config{
		Services: Services{
			Projects: projects,
			Modules:  moduleStub{},
			Merges:   mergeStub{},
			Audits:   auditStub{},
		},
		TransportMode: "stdio",
	})
}

func TestServer_ClientSession(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	server := newTestSDKServer()
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	initResult := session.InitializeResult()
	require.NotNil(t, initResult)
	require.Equal(t, "canon", initResult.ServerInfo.Name)

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	toolNames := make(map[string]bool, len(tools.Tools))
	for _, tool := range tools.Tools {
		require.NotEmpty(t, tool.Description)
		require.NotNil(t, tool.InputSchema)
		toolNames[tool.Name] = true
	}
	require.True(t, toolNames["propose_module"])
	require.True(t, toolNames["submit_module"])
	require.True(t, toolNames["rollback"])

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "create_project",
		Arguments: map[string]any{"name": "Shop"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.Contains(t, text.Text, "Shop")

	resources, err := session.ListResources(ctx, nil)
	require.NoError(t, err)
	uris := make(map[string]bool, len(resources.Resources))
	for _, r := range resources.Resources {
		uris[r.URI] = true
	}
	require.True(t, uris["canon://docs/index"])
	require.True(t, uris["canon://docs/workflows/conflicts"])
}

func TestServer_ToolErrorPayload(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	projects := defaultProjectStub()
	projects.getFn = func(_ context.Context, _ string, _ string) (*project.Project, error) {
		return nil, project.ErrProjectNotFound
	}
	server := NewServer(Config{
		Services: Services{
			Projects: projects,
			Modules:  moduleStub{},
			Merges:   mergeStub{},
			Audits:   auditStub{},
		},
		TransportMode: "stdio",
	})
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_project",
		Arguments: map[string]any{"id": "missing"},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.Contains(t, text.Text, "PROJECT_NOT_FOUND")
}

func TestHTTPHandler_Initialize(t *testing.T) {
	server := newTestSDKServer()
	ts := httptest.NewServer(NewHTTPHandler(server, nil))
	t.Cleanup(ts.Close)

	body := `{"jsonrpc":"2.0","method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test-client","version":"1.0.0"}},"id":1}`
	resp, err := http.Post(ts.URL, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rpcResp struct {
		Result struct {
			ProtocolVersion string `json:"protocolVersion"`
			ServerInfo      struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"serverInfo"`
		} `json:"result"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	require.Nil(t, rpcResp.Error)
	require.Equal(t, "canon", rpcResp.Result.ServerInfo.Name)
	require.Equal(t, "0.1.0", rpcResp.Result.ServerInfo.Version)
}

func TestHTTPHandler_ParseError(t *testing.T) {
	server := newTestSDKServer()
	ts := httptest.NewServer(NewHTTPHandler(server, nil))
	t.Cleanup(ts.Close)

	resp, err := http.Post(ts.URL, "application/json", bytes.NewBufferString("not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	var rpcResp struct {
		Error *struct {
			Code int `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	require.NotNil(t, rpcResp.Error)
	require.Equal(t, -32700, rpcResp.Error.Code)
}
