package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	aguievents "github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"
	"go.uber.org/zap"

	sb "github.com/spetersoncode/switchboard"
	"github.com/spetersoncode/switchboard/agui"
	"github.com/spetersoncode/switchboard/client"
)

// ChatHandler handles AG-UI chat requests over SSE.
type ChatHandler struct {
	client       client.Chatter
	defaultModel sb.ModelID
	logger       *zap.Logger
}

// NewChatHandler creates a handler that runs chats through c.
func NewChatHandler(c client.Chatter, defaultModel sb.ModelID, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{client: c, defaultModel: defaultModel, logger: logger}
}

// ServeHTTP handles POST requests to run a chat and stream events via SSE.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		h.logger.Warn("method not allowed", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input agui.RunInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	prepared, err := input.Prepare(h.defaultModel)
	if err != nil {
		h.logger.Warn("invalid input", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log := h.logger.With(
		zap.String("run_id", prepared.RunID),
		zap.String("thread_id", prepared.ThreadID),
		zap.Stringer("model", prepared.Model),
	)

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("streaming not supported")
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	log.Info("request started", zap.Int("message_count", len(prepared.Conversation.Messages)))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	mapper := agui.NewMapper(prepared.ThreadID, prepared.RunID)

	stream, err := h.client.Chat(r.Context(), prepared.Model, prepared.Conversation)
	if err != nil {
		// Setup failures are still reported as a run.
		log.Warn("chat failed", zap.Error(err), zap.String("category", string(sb.CategoryOf(err))))
		for _, ev := range []aguievents.Event{mapper.RunStarted(), mapper.RunError(err)} {
			if err := writeSSE(w, flusher, ev); err != nil {
				return
			}
		}
		return
	}

	var eventCount int
	var runErr bool
	for ev := range mapper.MapStream(stream) {
		eventCount++
		log.Debug("sending SSE event",
			zap.String("event_type", string(ev.Type())),
			zap.Int("event_num", eventCount),
		)
		if ev.Type() == aguievents.EventTypeRunError {
			runErr = true
		}

		if err := writeSSE(w, flusher, ev); err != nil {
			log.Error("failed to write SSE event", zap.Error(err), zap.String("event_type", string(ev.Type())))
			return
		}
	}

	fields := []zap.Field{
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		zap.Int("events_sent", eventCount),
	}
	if runErr {
		log.Warn("request ended with run error", fields...)
	} else {
		log.Info("request completed", fields...)
	}
}

// writeSSE writes an AG-UI event in SSE format.
func writeSSE(w http.ResponseWriter, flusher http.Flusher, ev aguievents.Event) error {
	data, err := ev.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	// Write SSE format: event: TYPE\ndata: {json}\n\n
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type(), string(data)); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	flusher.Flush()
	return nil
}

// corsMiddleware adds CORS headers for cross-origin frontend requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
