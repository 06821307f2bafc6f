package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/mailroute"
)

const completionBody = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1,
	"model": "gpt-4o-mini",
	"choices": [{
		"index": 0,
		"message": {"role": "assistant", "content": "{\"decision\":\"general\"}"},
		"finish_reason": "stop"
	}],
	"usage": {"prompt_tokens": 9, "completion_tokens": 4, "total_tokens": 13}
}`

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

func TestChat(t *testing.T) {
	var body map[string]any
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody)
	})

	schema := json.RawMessage(`{"type":"object","properties":{"decision":{"type":"string","enum":["summarize","general"]}},"required":["decision"]}`)
	resp, err := c.Chat(context.Background(), ai.UserMessage("what's the weather"),
		ai.WithResponseSchema(ai.ResponseSchema{Name: "decision", Schema: schema}),
		ai.WithMaxTokens(64),
	)
	require.NoError(t, err)

	assert.Equal(t, `{"decision":"general"}`, resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, ai.Usage{InputTokens: 9, OutputTokens: 4}, resp.Usage)

	assert.Equal(t, "gpt-4o-mini", body["model"])
	format, ok := body["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", format["type"])
	jsonSchema := format["json_schema"].(map[string]any)
	assert.Equal(t, "decision", jsonSchema["name"])
	assert.Equal(t, true, jsonSchema["strict"])
	assert.Equal(t, false, jsonSchema["schema"].(map[string]any)["additionalProperties"])
}

func TestChatModelOverride(t *testing.T) {
	var body map[string]any
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody)
	})
	WithModel(GPT41)(c)

	_, err := c.Chat(context.Background(), ai.UserMessage("hi"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1", body["model"])
	assert.NotContains(t, body, "response_format")

	_, err = c.Chat(context.Background(), ai.UserMessage("hi"), ai.WithModel("gpt-4o"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", body["model"])
}

func TestChatRateLimited(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "2")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"slow down","type":"rate_limit_error"}}`)
	})

	_, err := c.Chat(context.Background(), ai.UserMessage("hi"))
	require.Error(t, err)

	var e *ai.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ai.ErrorTransient, e.Category())
	assert.Equal(t, http.StatusTooManyRequests, e.StatusCode())
	assert.Equal(t, 2*time.Second, e.RetryAfter())
}

func TestChatUnauthorized(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	})

	_, err := c.Chat(context.Background(), ai.UserMessage("hi"))
	cat, ok := ai.CategoryOf(err)
	require.True(t, ok)
	assert.Equal(t, ai.ErrorPermanent, cat)
}

func TestParseRetryAfter(t *testing.T) {
	header := func(v string) *http.Response {
		return &http.Response{Header: http.Header{"Retry-After": []string{v}}}
	}

	assert.Zero(t, parseRetryAfter(nil))
	assert.Zero(t, parseRetryAfter(&http.Response{Header: http.Header{}}))
	assert.Equal(t, 5*time.Second, parseRetryAfter(header("5")))
	assert.Zero(t, parseRetryAfter(header("soon")))

	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	d := parseRetryAfter(header(future))
	assert.Greater(t, d, 30*time.Second)
}

func TestConvertMessages(t *testing.T) {
	msgs := convertMessages([]ai.Message{
		{Role: ai.RoleSystem, Content: "be brief"},
		{Role: ai.RoleUser, Content: "hello"},
		{Role: ai.RoleAssistant, Content: "hi"},
		{Role: ai.RoleUser},
	})
	require.Len(t, msgs, 3)
	assert.NotNil(t, msgs[0].OfSystem)
	assert.NotNil(t, msgs[1].OfUser)
	assert.NotNil(t, msgs[2].OfAssistant)
}
