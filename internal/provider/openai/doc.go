// Package openai implements [switchboard.Backend] for any HTTP API that speaks
// the OpenAI chat completions protocol: OpenAI itself, OpenRouter, Requesty,
// xAI and local servers.
//
// It wraps the official OpenAI Go SDK. SDK-level retries are disabled; failures
// are returned once and categorized so callers decide whether to retry.
//
// # Basic Usage
//
//	client, err := openai.New(switchboard.OpenRouter(key), httpClient, openai.WithVersion("1.0.0"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stream, err := client.Chat(ctx, "openai/gpt-4o", switchboard.NewContext(
//	    switchboard.UserMessage("Explain quantum computing briefly."),
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
package openai
