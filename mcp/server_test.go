package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/mailroute/workflow"
)

type runnerFunc func(ctx context.Context, input string) (*workflow.Result, error)

func (f runnerFunc) Run(ctx context.Context, input string) (*workflow.Result, error) {
	return f(ctx, input)
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = ToolName
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestRouteTool(t *testing.T) {
	tool := RouteTool()

	assert.Equal(t, "route_request", tool.Name)
	assert.NotEmpty(t, tool.Description)
	assert.Contains(t, tool.InputSchema.Properties, "user_input")
	assert.Equal(t, []string{"user_input"}, tool.InputSchema.Required)
}

func TestRouteHandler(t *testing.T) {
	t.Run("returns run result as JSON", func(t *testing.T) {
		var got string
		h := RouteHandler(runnerFunc(func(ctx context.Context, input string) (*workflow.Result, error) {
			got = input
			return &workflow.Result{
				Output:   "Meeting rescheduled to 3pm.",
				Decision: workflow.DecisionSummarize,
				RunID:    "run-1",
			}, nil
		}))

		res, err := h(context.Background(), callRequest(map[string]any{"user_input": "summarize this thread"}))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Equal(t, "summarize this thread", got)

		var body routeResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &body))
		assert.Equal(t, "Meeting rescheduled to 3pm.", body.Output)
		assert.Equal(t, "summarize", body.Decision)
		assert.Equal(t, "run-1", body.RunID)
	})

	t.Run("missing input is a tool error", func(t *testing.T) {
		called := false
		h := RouteHandler(runnerFunc(func(ctx context.Context, input string) (*workflow.Result, error) {
			called = true
			return nil, nil
		}))

		res, err := h(context.Background(), callRequest(nil))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.False(t, called)
		assert.Equal(t, "user_input is required", resultText(t, res))
	})

	t.Run("step failure is a tool error", func(t *testing.T) {
		h := RouteHandler(runnerFunc(func(ctx context.Context, input string) (*workflow.Result, error) {
			return nil, &workflow.StepError{Step: workflow.NodeClassify, Err: errors.New("provider down")}
		}))

		res, err := h(context.Background(), callRequest(map[string]any{"user_input": "hi"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Equal(t, "step initial_validator failed: provider down", resultText(t, res))
	})
}

func TestNewServer(t *testing.T) {
	s := NewServer(runnerFunc(func(ctx context.Context, input string) (*workflow.Result, error) {
		return &workflow.Result{}, nil
	}), WithName("test"), WithVersion("0.0.1"))

	assert.NotNil(t, s)
}
