package mailroute

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions(t *testing.T) {
	t.Run("returns empty options when no options provided", func(t *testing.T) {
		opts := ApplyOptions()
		require.NotNil(t, opts)
		assert.Empty(t, opts.Model)
		assert.Zero(t, opts.MaxTokens)
		assert.Nil(t, opts.Temperature)
		assert.Nil(t, opts.ResponseSchema)
	})

	t.Run("applies multiple options", func(t *testing.T) {
		opts := ApplyOptions(
			WithModel("gemini-2.0-flash-001"),
			WithMaxTokens(256),
			WithTemperature(0.2),
		)

		assert.Equal(t, "gemini-2.0-flash-001", opts.Model)
		assert.Equal(t, 256, opts.MaxTokens)
		require.NotNil(t, opts.Temperature)
		assert.Equal(t, 0.2, *opts.Temperature)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		opts := ApplyOptions(WithModel("a"), WithModel("b"))
		assert.Equal(t, "b", opts.Model)
	})
}

func TestWithTemperatureCopiesValue(t *testing.T) {
	temp := 0.5
	opts := ApplyOptions(WithTemperature(temp))
	temp = 1.5

	require.NotNil(t, opts.Temperature)
	assert.Equal(t, 0.5, *opts.Temperature)
}

func TestWithResponseSchema(t *testing.T) {
	rs := ResponseSchema{
		Name:   "validator_response",
		Schema: json.RawMessage(`{"type":"object"}`),
	}
	opts := ApplyOptions(WithResponseSchema(rs))

	require.NotNil(t, opts.ResponseSchema)
	assert.Equal(t, "validator_response", opts.ResponseSchema.Name)
	assert.JSONEq(t, `{"type":"object"}`, string(opts.ResponseSchema.Schema))
}

func TestUserMessage(t *testing.T) {
	msgs := UserMessage("hello")
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Content)
}

func TestParseProvider(t *testing.T) {
	for _, name := range []string{"google", "openai", "anthropic"} {
		p, err := ParseProvider(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.String())
	}

	_, err := ParseProvider("vertex")
	assert.Error(t, err)
}
