// Package mailroute routes a user request through a small LLM-driven decision workflow.
//
// A request is first classified by a language model into one of two labels,
// summarize or general. Summarize requests are expanded into email content,
// summarized, and the summary is forwarded to a webhook. General requests
// receive a fixed response.
//
// This root package holds the vocabulary shared by the provider adapters,
// the generation client and the workflow engine:
//
//   - [ChatProvider]: send a conversation, receive a complete [Response]
//   - [Option]: functional request options (model, tokens, response schema)
//   - [Error]: provider errors categorized as transient, permanent or user input
//   - [GenerationError]: any failure of the text generation port
//
// # Basic Usage
//
// Build a generation client over a provider and run the workflow:
//
//	gen, err := client.New(ctx, client.Config{
//	    Provider: mailroute.ProviderGoogle,
//	    APIKey:   os.Getenv("GOOGLE_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sink := notify.NewWebhook(os.Getenv("MAILROUTE_WEBHOOK_URL"))
//	engine, err := workflow.New(gen, sink)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := engine.Run(ctx, "summarize this thread")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Output)
//
// See [github.com/spetersoncode/mailroute/workflow] for the state machine and
// [github.com/spetersoncode/mailroute/client] for the generation port.
package mailroute
