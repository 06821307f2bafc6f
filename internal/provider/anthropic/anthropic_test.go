package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/mailroute"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newClient(nil,
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL+"/"),
		option.WithMaxRetries(0),
	)
}

func respond(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func TestChatText(t *testing.T) {
	var body map[string]any
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		respond(w, `{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-haiku-4-5",
			"content": [{"type": "text", "text": "Meeting rescheduled "}, {"type": "text", "text": "to 3pm."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 20, "output_tokens": 6}
		}`)
	})

	resp, err := c.Chat(context.Background(), []ai.Message{
		{Role: ai.RoleSystem, Content: "be brief"},
		{Role: ai.RoleUser, Content: "summarize"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Meeting rescheduled to 3pm.", resp.Content)
	assert.Equal(t, "end_turn", resp.FinishReason)
	assert.Equal(t, ai.Usage{InputTokens: 20, OutputTokens: 6}, resp.Usage)

	assert.Equal(t, "claude-haiku-4-5", body["model"])
	assert.EqualValues(t, defaultMaxTokens, body["max_tokens"])
	assert.NotContains(t, body, "tools")
	require.Len(t, body["messages"], 1)
	require.Len(t, body["system"], 1)
}

func TestChatStructured(t *testing.T) {
	var body map[string]any
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		respond(w, `{
			"id": "msg_2", "type": "message", "role": "assistant", "model": "claude-haiku-4-5",
			"content": [{"type": "tool_use", "id": "tu_1", "name": "`+jsonResponseToolName+`", "input": {"decision": "summarize"}}],
			"stop_reason": "tool_use",
			"usage": {"input_tokens": 30, "output_tokens": 8}
		}`)
	})

	schema := json.RawMessage(`{"type":"object","properties":{"decision":{"type":"string","enum":["summarize","general"]}},"required":["decision"]}`)
	resp, err := c.Chat(context.Background(), ai.UserMessage("summarize this thread"),
		ai.WithResponseSchema(ai.ResponseSchema{Name: "decision", Schema: schema}))
	require.NoError(t, err)

	assert.JSONEq(t, `{"decision":"summarize"}`, resp.Content)

	tools, ok := body["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
	assert.Equal(t, jsonResponseToolName, tools[0].(map[string]any)["name"])

	choice := body["tool_choice"].(map[string]any)
	assert.Equal(t, "tool", choice["type"])
	assert.Equal(t, jsonResponseToolName, choice["name"])
}

func TestChatOverloaded(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(529)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`)
	})

	_, err := c.Chat(context.Background(), ai.UserMessage("hi"))

	var e *ai.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ai.ErrorTransient, e.Category())
	assert.Equal(t, 529, e.StatusCode())
	assert.Equal(t, 3*time.Second, e.RetryAfter())
}

func TestBuildParamsOverrides(t *testing.T) {
	c := newClient([]ClientOption{WithModel(ClaudeSonnet45)}, option.WithAPIKey("k"))

	params := c.buildParams(ai.UserMessage("hi"), ai.ApplyOptions(ai.WithMaxTokens(100)))
	assert.Equal(t, "claude-sonnet-4-5", string(params.Model))
	assert.Equal(t, int64(100), params.MaxTokens)

	params = c.buildParams(ai.UserMessage("hi"), ai.ApplyOptions(ai.WithModel("claude-opus-4-5")))
	assert.Equal(t, "claude-opus-4-5", string(params.Model))
}

func TestConvertMessagesSkipsEmpty(t *testing.T) {
	msgs, system := convertMessages([]ai.Message{
		{Role: ai.RoleSystem},
		{Role: ai.RoleUser, Content: "hello"},
		{Role: ai.RoleAssistant, Content: ""},
	})
	assert.Len(t, msgs, 1)
	assert.Empty(t, system)
}
