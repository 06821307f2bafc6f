package openai

import (
	"encoding/json"

	"github.com/openai/openai-go"
	ai "github.com/spetersoncode/mailroute"
)

const defaultSchemaName = "response_schema"

// buildOpenAISchemaFormat requests strict JSON schema output.
func buildOpenAISchemaFormat(schema *ai.ResponseSchema) openai.ChatCompletionNewParamsResponseFormatUnion {
	var doc map[string]any
	_ = json.Unmarshal(schema.Schema, &doc)
	closeObjects(doc)

	name := schema.Name
	if name == "" {
		name = defaultSchemaName
	}

	param := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:   name,
		Schema: doc,
		Strict: openai.Bool(true),
	}
	if schema.Description != "" {
		param.Description = openai.String(schema.Description)
	}

	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: param},
	}
}

// closeObjects sets additionalProperties to false on every object schema,
// which strict mode requires.
func closeObjects(doc map[string]any) {
	if doc == nil {
		return
	}
	if t, _ := doc["type"].(string); t == "object" {
		doc["additionalProperties"] = false
	}
	if props, ok := doc["properties"].(map[string]any); ok {
		for _, prop := range props {
			if m, ok := prop.(map[string]any); ok {
				closeObjects(m)
			}
		}
	}
	if items, ok := doc["items"].(map[string]any); ok {
		closeObjects(items)
	}
}
