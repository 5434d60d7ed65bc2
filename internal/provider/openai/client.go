package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	sb "github.com/spetersoncode/switchboard"
)

// ErrInvalidURL is returned when the provider URL is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("openai: provider url must be an absolute http(s) url")

// Client talks to any OpenAI-compatible HTTP API and implements sb.Backend.
type Client struct {
	client   *openai.Client
	provider sb.Provider
	version  string
}

// ClientOption configures the OpenAI client.
type ClientOption func(*Client)

// WithVersion sets the client version announced in request headers.
func WithVersion(version string) ClientOption {
	return func(c *Client) {
		c.version = version
	}
}

// New creates a client for an OpenAI-compatible provider using httpClient as
// its transport. The provider key is optional; local servers often run without one.
func New(provider sb.Provider, httpClient *http.Client, opts ...ClientOption) (*Client, error) {
	if err := validateURL(provider.URL); err != nil {
		return nil, err
	}

	c := &Client{provider: provider.Clone()}
	for _, opt := range opts {
		opt(c)
	}

	reqOpts := []option.RequestOption{
		option.WithBaseURL(provider.URL),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(httpClient))
	}
	if provider.Key != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(provider.Key))
	}
	if c.version != "" {
		reqOpts = append(reqOpts,
			option.WithHeader("User-Agent", "switchboard/"+c.version),
			option.WithHeader("X-Client-Version", c.version),
		)
	}
	for k, v := range provider.ExtraHeaders {
		reqOpts = append(reqOpts, option.WithHeader(k, v))
	}

	client := openai.NewClient(reqOpts...)
	c.client = &client
	return c, nil
}

// Provider returns the provider this client talks to.
func (c *Client) Provider() sb.Provider {
	return c.provider.Clone()
}

// Models lists every model the provider offers, following pagination.
func (c *Client) Models(ctx context.Context) ([]sb.Model, error) {
	iter := c.client.Models.ListAutoPaging(ctx)

	var models []sb.Model
	for iter.Next() {
		models = append(models, convertModel(iter.Current()))
	}
	if err := iter.Err(); err != nil {
		return nil, wrapError(err)
	}
	return models, nil
}

// Chat starts a streamed chat completion.
// The request is sent before Chat returns; connection and HTTP status failures
// are returned directly rather than as the first stream item.
func (c *Client) Chat(ctx context.Context, model sb.ModelID, conversation sb.Context) (*sb.Stream[sb.ChatCompletionMessage], error) {
	if len(conversation.Messages) == 0 {
		return nil, sb.NewUserInputError("openai: conversation has no messages", 0, nil)
	}

	params := openai.ChatCompletionNewParams{
		Model:    model.String(),
		Messages: convertMessages(conversation.Messages),
		StreamOptions: openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.Bool(true),
		},
	}
	if conversation.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(conversation.MaxTokens))
	}
	if conversation.Temperature != nil {
		params.Temperature = openai.Float(*conversation.Temperature)
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		stream.Close()
		return nil, wrapError(err)
	}

	return sb.NewStream(func(yield func(sb.ChatCompletionMessage, error) bool) {
		for stream.Next() {
			msg, ok := convertChunk(stream.Current())
			if !ok {
				continue
			}
			if !yield(msg, nil) {
				return
			}
		}
		if err := stream.Err(); err != nil {
			yield(sb.ChatCompletionMessage{}, wrapError(err))
		}
	}, stream.Close), nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return nil
}

var _ sb.Backend = (*Client)(nil)
