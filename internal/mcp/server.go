package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Services contains all domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Modules  ModuleService
	Merges   MergeService
	Audits   AuditService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      TenantResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "canon",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Add middleware (auth + session extraction)
	// Stdio mode: always disable auth (local dev only)
	if cfg.TransportMode == "stdio" {
		server.AddReceivingMiddleware(noAuthMiddleware("default"))
	} else {
		// HTTP mode: auth based on config
		if cfg.AuthEnabled {
			server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
		} else {
			server.AddReceivingMiddleware(noAuthMiddleware("default"))
		}
	}
	server.AddReceivingMiddleware(sessionMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	// Register all tools
	registerTools(server, cfg.Services)

	return server
}

// registerTools wires the tool catalog to the dispatch handler. Every tool
// shares one handler; the tool name selects the operation.
func registerTools(server *sdkmcp.Server, services Services) {
	handler := NewHandler(services.Projects, services.Modules, services.Merges, services.Audits)

	for _, def := range buildToolCatalog() {
		def := def

		schema, err := toSchema(def.InputSchema)
		if err != nil {
			panic(fmt.Sprintf("invalid input schema for tool %s: %v", def.Name, err))
		}

		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: schema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil && req.Params.Arguments != nil {
				data, err := json.Marshal(req.Params.Arguments)
				if err != nil {
					return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
				}
				args = data
			}

			result, err := handler.Handle(ctx, getTenantID(ctx), getSessionID(ctx), def.Name, args)
			if err != nil {
				return toolError(err), nil
			}
			return toolResult(result)
		})
	}
}

func toSchema(raw map[string]any) (*jsonschema.Schema, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

func toolResult(payload any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling tool result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

func toolError(err error) *sdkmcp.CallToolResult {
	payload := map[string]any{"error": err.Error()}
	if apiErr, ok := err.(*APIError); ok {
		payload = map[string]any{"error": apiErr}
	}
	data, merr := json.Marshal(payload)
	if merr != nil {
		data = []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: true,
	}
}
