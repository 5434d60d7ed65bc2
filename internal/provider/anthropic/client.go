package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	sb "github.com/spetersoncode/switchboard"
)

var (
	// ErrMissingAPIKey is returned when the provider carries no key.
	ErrMissingAPIKey = errors.New("anthropic: api key is required")

	// ErrInvalidURL is returned when the provider URL is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("anthropic: provider url must be an absolute http(s) url")
)

// DefaultMaxTokens is sent when the conversation does not set MaxTokens.
// The Messages API requires an explicit limit.
const DefaultMaxTokens = 4096

// Client wraps the Anthropic SDK to implement sb.Backend.
type Client struct {
	client   *anthropic.Client
	provider sb.Provider
	version  string
}

// ClientOption configures the Anthropic client.
type ClientOption func(*Client)

// WithVersion sets the client version announced in request headers.
func WithVersion(version string) ClientOption {
	return func(c *Client) {
		c.version = version
	}
}

// New creates an Anthropic client using httpClient as its transport.
func New(provider sb.Provider, httpClient *http.Client, opts ...ClientOption) (*Client, error) {
	if provider.Key == "" {
		return nil, ErrMissingAPIKey
	}
	u, err := url.Parse(provider.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, provider.URL)
	}

	c := &Client{provider: provider.Clone()}
	for _, opt := range opts {
		opt(c)
	}

	reqOpts := []option.RequestOption{
		option.WithBaseURL(provider.URL),
		option.WithAPIKey(provider.Key),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(httpClient))
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

	client := anthropic.NewClient(reqOpts...)
	c.client = &client
	return c, nil
}

// Provider returns the provider this client talks to.
func (c *Client) Provider() sb.Provider {
	return c.provider.Clone()
}

// Models lists every model the API key can access, following pagination.
func (c *Client) Models(ctx context.Context) ([]sb.Model, error) {
	iter := c.client.Models.ListAutoPaging(ctx, anthropic.ModelListParams{})

	var models []sb.Model
	for iter.Next() {
		info := iter.Current()
		models = append(models, sb.Model{
			ID:        sb.ModelID(info.ID),
			Name:      info.DisplayName,
			OwnedBy:   "anthropic",
			CreatedAt: info.CreatedAt,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, wrapError(err)
	}
	return models, nil
}

// Chat starts a streamed message.
// The request is sent before Chat returns; connection and HTTP status failures
// are returned directly rather than as the first stream item.
func (c *Client) Chat(ctx context.Context, model sb.ModelID, conversation sb.Context) (*sb.Stream[sb.ChatCompletionMessage], error) {
	msgs, system := convertMessages(conversation.Messages)
	if len(msgs) == 0 {
		return nil, sb.NewUserInputError("anthropic: conversation has no user or assistant messages", 0, nil)
	}

	maxTokens := int64(DefaultMaxTokens)
	if conversation.MaxTokens > 0 {
		maxTokens = int64(conversation.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model.String()),
		MaxTokens: maxTokens,
		Messages:  msgs,
	}
	if len(system) > 0 {
		params.System = system
	}
	if conversation.Temperature != nil {
		params.Temperature = anthropic.Float(*conversation.Temperature)
	}

	stream := c.client.Messages.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		stream.Close()
		return nil, wrapError(err)
	}

	return sb.NewStream(func(yield func(sb.ChatCompletionMessage, error) bool) {
		var acc streamState
		for stream.Next() {
			msg, ok := acc.convert(stream.Current())
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

var _ sb.Backend = (*Client)(nil)
