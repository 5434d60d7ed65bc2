// Package client provides a unified facade over one LLM provider backend.
//
// The Client selects a backend from the provider's Kind (the OpenAI-compatible
// family or Anthropic) and provides:
//
//   - Model listing with an in-memory cache; Model answers from the cache when it can
//   - Streamed chat completions behind a lazily pulled Stream
//   - Uniform error classification: every failure, including each failed
//     stream item, is a *switchboard.Error that says whether a retry may succeed
//   - Event emission, zap logging and Prometheus metrics
//
// The client never retries on its own. Callers apply their own policy using
// the error category and the hints in RetryConfig.
//
// # Basic Usage
//
//	c, err := client.New(switchboard.OpenRouter(os.Getenv("OPENROUTER_API_KEY")),
//	    nil, "1.0.0", switchboard.DefaultHTTPConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stream, err := c.Chat(ctx, "openai/gpt-4o", switchboard.NewContext(
//	    switchboard.UserMessage("Hello!"),
//	))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for msg, err := range stream.All() {
//	    if switchboard.IsTransient(err) {
//	        continue // the stream decides whether more items follow
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Print(msg.Content)
//	}
//
// # Models
//
// Models always refreshes. Model is cache-first; a miss refreshes once and
// reports an unknown ID with ok == false rather than an error:
//
//	m, ok, err := c.Model(ctx, "anthropic/claude-sonnet-4")
//
// Concurrent refreshes share a single backend call.
//
// # Retry Configuration
//
// RetryConfig decides which HTTP status codes are transient:
//
//	cfg := client.DefaultRetryConfig()
//	cfg.RetryStatusCodes = append(cfg.RetryStatusCodes, 409)
//	c, err := client.New(provider, &cfg, version, switchboard.DefaultHTTPConfig())
//
// # Events
//
// Observe operations via an event channel:
//
//	events := make(chan client.Event, 100)
//	c, err := client.New(provider, nil, version, httpConfig, client.WithEvents(events))
//
//	go func() {
//	    for e := range events {
//	        fmt.Printf("[%s] %s took %v\n", e.Type, e.Operation, e.Duration)
//	    }
//	}()
package client
