package client

import (
	"context"
	"strings"

	sb "github.com/spetersoncode/switchboard"
)

// Chatter starts streamed chats. *Client implements it.
type Chatter interface {
	Chat(ctx context.Context, id sb.ModelID, conversation sb.Context) (*sb.Stream[sb.ChatCompletionMessage], error)
}

// Completion is a chat response assembled from a whole stream.
type Completion struct {
	Content      string          `json:"content"`
	Reasoning    string          `json:"reasoning,omitempty"`
	FinishReason sb.FinishReason `json:"finishReason,omitempty"`
	Usage        sb.Usage        `json:"usage"`
}

// Complete runs a chat and drains the stream into a single Completion.
// It stops at the first failed item; the partial completion is returned with
// the classified error so callers can show what arrived.
func Complete(ctx context.Context, c Chatter, id sb.ModelID, conversation sb.Context) (*Completion, error) {
	stream, err := c.Chat(ctx, id, conversation)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var content, reasoning strings.Builder
	out := &Completion{}
	for msg, err := range stream.All() {
		if err != nil {
			out.Content = content.String()
			out.Reasoning = reasoning.String()
			return out, err
		}
		content.WriteString(msg.Content)
		reasoning.WriteString(msg.Reasoning)
		if msg.FinishReason != "" {
			out.FinishReason = msg.FinishReason
		}
		if msg.Usage != nil {
			out.Usage = *msg.Usage
		}
	}

	out.Content = content.String()
	out.Reasoning = reasoning.String()
	return out, nil
}
