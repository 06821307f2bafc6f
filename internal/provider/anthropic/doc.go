// Package anthropic implements [mailroute.ChatProvider] over the Anthropic Messages API.
//
// Structured output is requested through a single synthetic tool whose input
// schema is the requested response schema; the tool call's input is returned
// as the response content.
//
//	client := anthropic.New(os.Getenv("ANTHROPIC_API_KEY"))
//	resp, err := client.Chat(ctx, mailroute.UserMessage("Explain SMTP briefly."))
package anthropic
