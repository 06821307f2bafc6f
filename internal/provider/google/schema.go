package google

import (
	"encoding/json"

	"google.golang.org/genai"
)

var schemaTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// ConvertJSONSchemaToGenaiSchema converts a JSON Schema document to a genai.Schema.
// It returns nil for an empty or unparseable document. Keywords Gemini does not
// understand, such as additionalProperties, are dropped.
func ConvertJSONSchemaToGenaiSchema(schemaJSON json.RawMessage) *genai.Schema {
	if len(schemaJSON) == 0 {
		return nil
	}

	var doc map[string]any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil
	}
	return convertSchemaObject(doc)
}

func convertSchemaObject(doc map[string]any) *genai.Schema {
	if doc == nil {
		return nil
	}

	out := &genai.Schema{}
	if t, ok := doc["type"].(string); ok {
		out.Type = schemaTypes[t]
	}
	if desc, ok := doc["description"].(string); ok {
		out.Description = desc
	}
	out.Enum = stringList(doc["enum"])
	out.Required = stringList(doc["required"])

	if props, ok := doc["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, prop := range props {
			if m, ok := prop.(map[string]any); ok {
				out.Properties[name] = convertSchemaObject(m)
			}
		}
	}
	if items, ok := doc["items"].(map[string]any); ok {
		out.Items = convertSchemaObject(items)
	}
	return out
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
