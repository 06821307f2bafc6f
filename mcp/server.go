// Package mcp exposes the mailroute workflow as an MCP (Model Context Protocol)
// tool server, so MCP clients such as desktop assistants can route requests
// through it.
//
//	srv := mcp.NewServer(engine, mcp.WithVersion("1.2.0"))
//	if err := server.ServeStdio(srv); err != nil {
//	    log.Fatal(err)
//	}
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/spetersoncode/mailroute/workflow"
)

// ToolName is the name of the single tool the server registers.
const ToolName = "route_request"

// Runner executes one workflow run. *workflow.Engine satisfies it.
type Runner interface {
	Run(ctx context.Context, userInput string) (*workflow.Result, error)
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// NewServer creates an MCP server with the route_request tool bound to r.
func NewServer(r Runner, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "mailroute",
		version: "dev",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)
	s.AddTool(RouteTool(), RouteHandler(r))
	return s
}

// ServeStdio serves r over stdin/stdout until the client disconnects.
func ServeStdio(r Runner, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(r, opts...))
}

// RouteTool describes the route_request tool.
func RouteTool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Classify a request and either summarize the described email content or return a general response."),
		mcp.WithString("user_input", mcp.Required(), mcp.Description("The request to route")),
	)
}

// routeResult is the JSON body of a successful tool call.
type routeResult struct {
	Output   string `json:"output"`
	Decision string `json:"decision"`
	RunID    string `json:"run_id"`
}

// RouteHandler adapts r to an MCP tool handler. Workflow failures are
// reported as tool errors rather than protocol errors.
func RouteHandler(r Runner) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, _ := req.GetArguments()["user_input"].(string)
		if input == "" {
			return mcp.NewToolResultError("user_input is required"), nil
		}

		res, err := r.Run(ctx, input)
		if err != nil {
			return mcp.NewToolResultError(describe(err)), nil
		}

		data, err := json.Marshal(routeResult{
			Output:   res.Output,
			Decision: res.Decision.String(),
			RunID:    res.RunID,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

func describe(err error) string {
	var se *workflow.StepError
	if errors.As(err, &se) {
		return fmt.Sprintf("step %s failed: %v", se.Step, se.Err)
	}
	return err.Error()
}
