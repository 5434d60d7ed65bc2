// Package switchboard provides one client surface over LLM providers that
// speak either the OpenAI chat-completions protocol or the Anthropic
// messages protocol.
//
// This package holds the shared vocabulary: [Provider] descriptions and
// presets, [Model] metadata, conversations ([Context], [Message]), the
// streamed [ChatCompletionMessage], the lazily pulled [Stream], transport
// settings ([HTTPConfig]) and the categorized [Error]. Backends implement
// [Backend]; the [github.com/spetersoncode/switchboard/client] package is
// the entry point for callers.
//
// # Basic Usage
//
//	c, err := client.New(switchboard.OpenRouter(os.Getenv("OPENROUTER_API_KEY")),
//	    nil, "1.0.0", switchboard.DefaultHTTPConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	models, err := c.Models(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stream, err := c.Chat(ctx, models[0].ID, switchboard.NewContext(
//	    switchboard.UserMessage("Hello!"),
//	))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for msg, err := range stream.All() {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Print(msg.Content)
//	}
//
// # Error Handling
//
// Every error the client returns, including errors carried by stream items,
// is an [*Error] with a category:
//
//   - [ErrorTransient]: rate limits, 5xx, timeouts and connection resets; retrying may succeed
//   - [ErrorPermanent]: authentication failures and other errors that will not go away
//   - [ErrorUserInput]: invalid requests such as an unknown model or an oversized conversation
//
// Use [IsTransient], [IsPermanent] and [IsUserInput] to branch on the
// category, and [RetryAfterOf] for a server-requested delay. The client
// does not retry on its own.
package switchboard
