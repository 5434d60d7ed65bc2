package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	sb "github.com/spetersoncode/switchboard"
	"github.com/spetersoncode/switchboard/internal/provider/anthropic"
	"github.com/spetersoncode/switchboard/internal/provider/openai"
	"github.com/spetersoncode/switchboard/internal/retry"
	"github.com/spetersoncode/switchboard/internal/transport"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrUnknownProvider is returned when a provider's Kind names no backend.
var ErrUnknownProvider = errors.New("unknown provider kind")

// ConstructionError is returned by New when the backend cannot be
// initialized. It is never returned by runtime operations.
type ConstructionError struct {
	Provider string
	URL      string
	Err      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("failed to construct %s client for %q: %v", e.Provider, e.URL, e.Err)
}

// Unwrap returns the backend's initialization error.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEvents sets a channel for receiving client operation events.
// Events are sent non-blocking; if the channel is full, events are dropped.
func WithEvents(ch chan<- Event) ClientOption {
	return func(c *Client) {
		c.events = ch
	}
}

// WithMetrics registers the client's collectors with reg.
// Clients sharing a registerer share collectors.
func WithMetrics(reg prometheus.Registerer) ClientOption {
	return func(c *Client) {
		c.registerer = reg
	}
}

// Client is a unified facade over one provider backend.
//
// It caches model metadata and classifies every failure, including failures
// of individual stream items, into a *switchboard.Error. A *Client is safe for
// concurrent use; copies of the pointer share the same cache and backend.
type Client struct {
	provider    sb.Provider
	kind        sb.ProviderKind
	backend     sb.Backend
	retryConfig *RetryConfig
	version     string

	cache   *modelCache
	refresh singleflight.Group
	// refreshTimeout bounds a shared refresh once it is detached from callers.
	refreshTimeout time.Duration

	logger     *zap.Logger
	events     chan<- Event
	registerer prometheus.Registerer
	metrics    *metrics
}

// New creates a client for provider.
//
// The HTTP transport is built from httpConfig and handed to the backend
// selected by provider.Kind. A nil retryConfig uses DefaultRetryConfig. The
// version is announced on every backend request. New performs no network I/O.
func New(provider sb.Provider, retryConfig *RetryConfig, version string, httpConfig sb.HTTPConfig, opts ...ClientOption) (*Client, error) {
	httpClient := transport.New(httpConfig)

	backend, err := newBackend(provider, httpClient, version)
	if err != nil {
		return nil, &ConstructionError{Provider: provider.DisplayName(), URL: provider.URL, Err: err}
	}
	c, err := newWithBackend(provider, backend, retryConfig, version, opts...)
	if err != nil {
		return nil, err
	}
	c.refreshTimeout = transport.RefreshTimeout(httpConfig)
	return c, nil
}

func newBackend(provider sb.Provider, httpClient *http.Client, version string) (sb.Backend, error) {
	switch provider.Kind {
	case sb.ProviderOpenAI:
		return openai.New(provider, httpClient, openai.WithVersion(version))
	case sb.ProviderAnthropic:
		return anthropic.New(provider, httpClient, anthropic.WithVersion(version))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider.Kind)
	}
}

func newWithBackend(provider sb.Provider, backend sb.Backend, retryConfig *RetryConfig, version string, opts ...ClientOption) (*Client, error) {
	if retryConfig == nil {
		def := DefaultRetryConfig()
		retryConfig = &def
	}

	c := &Client{
		provider:    provider.Clone(),
		kind:        provider.Kind,
		backend:     backend,
		retryConfig: retryConfig,
		version:     version,
		cache:       newModelCache(),
		logger:      zap.NewNop(),

		refreshTimeout: transport.RefreshTimeout(sb.DefaultHTTPConfig()),
	}
	for _, opt := range opts {
		opt(c)
	}

	m, err := newMetrics(c.registerer)
	if err != nil {
		return nil, &ConstructionError{Provider: provider.DisplayName(), URL: provider.URL, Err: err}
	}
	c.metrics = m
	c.logger = c.logger.With(zap.String("provider", c.provider.DisplayName()))
	return c, nil
}

// Provider returns a copy of the configured provider.
func (c *Client) Provider() sb.Provider {
	return c.provider.Clone()
}

// Kind returns the protocol family of the selected backend.
func (c *Client) Kind() sb.ProviderKind {
	return c.kind
}

// Version returns the client version announced to the provider.
func (c *Client) Version() string {
	return c.version
}

// RetryConfig returns the retry configuration used for classification.
func (c *Client) RetryConfig() RetryConfig {
	return *c.retryConfig
}

// CachedModels returns the cached models ordered by ID without any I/O.
func (c *Client) CachedModels() []sb.Model {
	return c.cache.snapshot()
}

// Models fetches the provider's model list and replaces the cache with it.
// It never answers from the cache.
func (c *Client) Models(ctx context.Context) ([]sb.Model, error) {
	return c.refreshModels(ctx, "models")
}

// Model returns the model with the given ID.
// A cache hit performs no I/O. A miss refreshes the cache once and searches
// the fresh list; a model absent after the refresh is reported with ok set to
// false and a nil error.
func (c *Client) Model(ctx context.Context, id sb.ModelID) (sb.Model, bool, error) {
	if m, ok := c.cache.get(id); ok {
		c.metrics.observeCache(true)
		c.logger.Debug("model cache hit", zap.String("model", id.String()))
		emit(c.events, Event{Type: EventCacheHit, Operation: "model", Provider: c.provider.DisplayName(), Model: id})
		return m, true, nil
	}

	c.metrics.observeCache(false)
	c.logger.Debug("model cache miss", zap.String("model", id.String()))
	emit(c.events, Event{Type: EventCacheMiss, Operation: "model", Provider: c.provider.DisplayName(), Model: id})

	models, err := c.refreshModels(ctx, "model")
	if err != nil {
		return sb.Model{}, false, err
	}
	for _, m := range models {
		if m.ID == id {
			return m, true, nil
		}
	}
	return sb.Model{}, false, nil
}

// Chat starts a streamed chat completion with the given model.
//
// A failure establishing the stream is classified and returned before any
// item. Every item pulled afterwards passes through the classifier on its
// own; an error item does not end the stream if the backend keeps yielding.
// Callers must range over the stream or Close it.
func (c *Client) Chat(ctx context.Context, id sb.ModelID, conversation sb.Context) (*sb.Stream[sb.ChatCompletionMessage], error) {
	provider := c.provider.DisplayName()
	start := time.Now()
	emit(c.events, Event{Type: EventRequestStart, Operation: "chat", Provider: provider, Model: id})

	stream, err := c.backend.Chat(ctx, id, conversation)
	if err != nil {
		err = c.classify("chat", err, zap.String("model", id.String()), zap.String("conversation", conversation.ConversationID))
		c.metrics.observeRequest(provider, "chat", string(sb.CategoryOf(err)), time.Since(start))
		emit(c.events, Event{Type: EventRequestError, Operation: "chat", Provider: provider, Model: id, Duration: time.Since(start), Error: err})
		return nil, err
	}

	c.metrics.observeRequest(provider, "chat", "success", time.Since(start))
	emit(c.events, Event{Type: EventRequestComplete, Operation: "chat", Provider: provider, Model: id, Duration: time.Since(start)})

	return sb.MapStream(stream, func(msg sb.ChatCompletionMessage, err error) (sb.ChatCompletionMessage, error) {
		if err != nil {
			err = c.classify("chat_stream", err, zap.String("model", id.String()), zap.String("conversation", conversation.ConversationID))
			c.metrics.observeStreamItem(provider, string(sb.CategoryOf(err)))
			emit(c.events, Event{Type: EventStreamItemError, Operation: "chat", Provider: provider, Model: id, Error: err})
			return msg, err
		}
		c.metrics.observeStreamItem(provider, "success")
		if msg.Usage != nil {
			emit(c.events, Event{Type: EventStreamUsage, Operation: "chat", Provider: provider, Model: id, Usage: msg.Usage})
		}
		return msg, nil
	}), nil
}

// refreshModels fetches the model list and replaces the cache.
//
// Concurrent refreshes share one backend call. The fetch is detached from
// any single caller's cancellation and bounded by refreshTimeout instead;
// each caller stops waiting when its own ctx is done. A failed fetch leaves
// the cache untouched. Every caller gets its own copy of the list.
func (c *Client) refreshModels(ctx context.Context, operation string) ([]sb.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, c.classify(operation, err)
	}

	ch := c.refresh.DoChan("models", func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout)
		defer cancel()
		return c.fetchModels(fetchCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]sb.Model)), nil
	case <-ctx.Done():
		return nil, c.classify(operation, ctx.Err())
	}
}

// fetchModels is shared by every caller joining the refresh, so it records
// under the "refresh" operation rather than the caller's.
func (c *Client) fetchModels(ctx context.Context) ([]sb.Model, error) {
	const operation = "refresh"
	provider := c.provider.DisplayName()
	start := time.Now()
	emit(c.events, Event{Type: EventRequestStart, Operation: operation, Provider: provider})

	models, err := c.backend.Models(ctx)
	if err != nil {
		err = c.classify(operation, err)
		c.metrics.observeRequest(provider, operation, string(sb.CategoryOf(err)), time.Since(start))
		emit(c.events, Event{Type: EventRequestError, Operation: operation, Provider: provider, Duration: time.Since(start), Error: err})
		return nil, err
	}

	c.cache.replace(models)

	c.metrics.observeRequest(provider, operation, "success", time.Since(start))
	c.logger.Info("refreshed model cache", zap.Int("models", len(models)), zap.Duration("elapsed", time.Since(start)))
	emit(c.events, Event{Type: EventRequestComplete, Operation: operation, Provider: provider, Duration: time.Since(start)})
	return models, nil
}

// classify categorizes err with the client's retry configuration and
// records it.
func (c *Client) classify(operation string, err error, fields ...zap.Field) error {
	err = retry.Classify(err, c.retryConfig)
	cat := sb.CategoryOf(err)

	c.metrics.observeError(operation, string(cat))
	c.logger.Warn("backend request failed", append(fields,
		zap.String("operation", operation),
		zap.String("category", string(cat)),
		zap.Int("status", sb.StatusCodeOf(err)),
		zap.Error(err),
	)...)
	return err
}
