// Package client implements the workflow's text generation port on top of a
// mailroute.ChatProvider.
//
// A Client offers two operations:
//
//   - [Client.Generate]: send a prompt, receive free text
//   - [Client.Choose]: send a prompt and a closed label set, receive exactly
//     one of those labels
//
// Choose requests structured output shaped as {"decision": <label>}, then
// decodes the reply and validates it against the same JSON Schema. A reply
// that is not JSON, does not match the schema or names a label outside the
// set is never coerced: it fails with a [mailroute.GenerationError] wrapping
// [mailroute.ErrNonConforming].
//
// Transient provider errors (rate limits, overload, dropped connections) are
// retried with exponential backoff before giving up.
//
// # Basic Usage
//
//	c, err := client.New(ctx, client.Config{
//	    Provider: mailroute.ProviderGoogle,
//	    APIKey:   os.Getenv("GOOGLE_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	label, err := c.Choose(ctx, prompt, []string{"summarize", "general"})
//
// Any ChatProvider can be wrapped directly, which is how tests substitute a
// stub:
//
//	c := client.NewWithProvider(provider, client.WithRetryConfig(client.DisabledRetryConfig()))
package client
