package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	ai "github.com/spetersoncode/mailroute"
	"github.com/spetersoncode/mailroute/schema"
)

const (
	decisionField       = "decision"
	decisionSchemaName  = "decision"
	decisionDescription = "The decision made by the llm initially."
)

// Generate sends prompt as a single user message and returns the reply text.
// Empty replies are returned as-is.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.Chat(ctx, ai.UserMessage(prompt))
	if err != nil {
		return "", &ai.GenerationError{Op: "generate", Err: err}
	}
	return resp.Content, nil
}

// Choose asks the model to pick exactly one of labels and returns it.
func (c *Client) Choose(ctx context.Context, prompt string, labels []string) (string, error) {
	doc, err := DecisionSchema(labels)
	if err != nil {
		return "", &ai.GenerationError{Op: "choose", Err: err}
	}

	resp, err := c.Chat(ctx, ai.UserMessage(prompt), ai.WithResponseSchema(ai.ResponseSchema{
		Name:        decisionSchemaName,
		Description: decisionDescription,
		Schema:      doc,
	}))
	if err != nil {
		return "", &ai.GenerationError{Op: "choose", Err: err}
	}

	label, err := decodeChoice(doc, resp.Content, labels)
	if err != nil {
		return "", &ai.GenerationError{Op: "choose", Err: err}
	}
	return label, nil
}

// DecisionSchema builds {"decision": enum(labels)} as a closed object schema.
func DecisionSchema(labels []string) (json.RawMessage, error) {
	return schema.Object().
		Field(decisionField, schema.String().
			Desc(decisionDescription).
			Enum(labels...).
			Required()).
		StrictMode().
		Build()
}

type choice struct {
	Decision string `json:"decision"`
}

// decodeChoice validates content against doc and extracts the label.
func decodeChoice(doc json.RawMessage, content string, labels []string) (string, error) {
	content = stripCodeFence(content)
	if content == "" {
		return "", fmt.Errorf("%w: empty response", ai.ErrNonConforming)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(doc),
		gojsonschema.NewStringLoader(content),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ai.ErrNonConforming, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return "", fmt.Errorf("%w: %s", ai.ErrNonConforming, strings.Join(msgs, "; "))
	}

	var out choice
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return "", fmt.Errorf("%w: %v", ai.ErrNonConforming, err)
	}
	for _, l := range labels {
		if out.Decision == l {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: got %q", ai.ErrNonConforming, out.Decision)
}

// stripCodeFence removes a surrounding markdown code fence, which some
// models add even in JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
