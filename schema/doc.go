// Package schema builds the JSON Schema documents sent to providers as
// structured-output contracts.
//
// Schemas are constructed programmatically and validated when built:
//
//	decision := schema.Object().
//		Field("decision", schema.String().
//			Desc("The decision made by the llm initially.").
//			Enum("summarize", "general").
//			Required()).
//		StrictMode().
//		MustBuild()
//
// The same document is used twice: once as the provider's response schema
// and once to validate what the provider actually returned.
package schema
