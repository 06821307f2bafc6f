package anthropic

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	ai "github.com/spetersoncode/mailroute"
)

// jsonResponseToolName is the synthetic tool used for structured output.
const jsonResponseToolName = "__mailroute_json_response__"

const defaultToolDescription = "Output the response as structured JSON"

// buildAnthropicJSONTool returns a tool whose input schema is the response
// schema, together with a tool choice that forces the model to call it.
func buildAnthropicJSONTool(rs *ai.ResponseSchema) (anthropic.ToolUnionParam, anthropic.ToolChoiceUnionParam) {
	var doc map[string]any
	_ = json.Unmarshal(rs.Schema, &doc)

	var required []string
	if list, ok := doc["required"].([]any); ok {
		for _, r := range list {
			if s, ok := r.(string); ok {
				required = append(required, s)
			}
		}
	}

	description := rs.Description
	if description == "" {
		description = defaultToolDescription
	}

	tool := anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        jsonResponseToolName,
			Description: anthropic.String(description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: doc["properties"],
				Required:   required,
			},
		},
	}
	choice := anthropic.ToolChoiceUnionParam{
		OfTool: &anthropic.ToolChoiceToolParam{Name: jsonResponseToolName},
	}
	return tool, choice
}
