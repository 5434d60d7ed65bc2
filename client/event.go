package client

import (
	"time"

	sb "github.com/spetersoncode/switchboard"
)

// EventType identifies the kind of event occurring during client operations.
type EventType string

const (
	// EventRequestStart fires before a backend request begins.
	EventRequestStart EventType = "request_start"

	// EventRequestComplete fires after a backend request completes successfully.
	// For chat this is when the stream is established.
	EventRequestComplete EventType = "request_complete"

	// EventRequestError fires when a backend request fails.
	EventRequestError EventType = "request_error"

	// EventCacheHit fires when Model is answered from the cache.
	EventCacheHit EventType = "cache_hit"

	// EventCacheMiss fires when Model has to refresh the cache.
	EventCacheMiss EventType = "cache_miss"

	// EventStreamItemError fires for every failed stream item.
	EventStreamItemError EventType = "stream_item_error"

	// EventStreamUsage fires when a stream item reports token usage.
	EventStreamUsage EventType = "stream_usage"
)

// Event represents an observable occurrence during client operations.
type Event struct {
	// Type identifies the kind of event.
	Type EventType

	// Operation identifies the client operation ("models", "model", "chat").
	Operation string

	// Provider is the display name of the configured provider.
	Provider string

	// Model is the model involved, if any.
	Model sb.ModelID

	// Duration is the elapsed time for completed or failed requests.
	Duration time.Duration

	// Usage contains token usage for EventStreamUsage.
	Usage *sb.Usage

	// Error contains the classified error for error events.
	Error error

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// emit sends an event with timestamp to the channel without blocking.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
		// Channel full - don't block
	}
}
