package switchboard

import "maps"

// ProviderKind identifies which backend protocol a provider speaks.
type ProviderKind string

// String returns the provider kind identifier.
func (k ProviderKind) String() string { return string(k) }

// Supported provider kinds.
const (
	// ProviderOpenAI covers every OpenAI-compatible API (OpenAI, OpenRouter,
	// Requesty, xAI, local servers).
	ProviderOpenAI ProviderKind = "openai"
	// ProviderAnthropic is the Anthropic Messages API.
	ProviderAnthropic ProviderKind = "anthropic"
)

// Default base URLs.
const (
	OpenAIURL     = "https://api.openai.com/v1/"
	OpenRouterURL = "https://openrouter.ai/api/v1/"
	RequestyURL   = "https://router.requesty.ai/v1/"
	XAIURL        = "https://api.x.ai/v1/"
	AnthropicURL  = "https://api.anthropic.com/"
)

// Provider describes which backend a client talks to and how to reach it.
type Provider struct {
	// Kind selects the backend protocol.
	Kind ProviderKind
	// Name is a display name, e.g. "openrouter". Defaults to Kind.
	Name string
	// URL is the base URL of the API.
	URL string
	// Key is the API credential. Optional for OpenAI-compatible local servers.
	Key string
	// ExtraHeaders are sent on every request.
	ExtraHeaders map[string]string
}

// DisplayName returns Name, or the kind when Name is empty.
func (p Provider) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Kind.String()
}

// IsOpenAICompatible reports whether the provider speaks the OpenAI protocol.
func (p Provider) IsOpenAICompatible() bool { return p.Kind == ProviderOpenAI }

// IsAnthropic reports whether the provider speaks the Anthropic protocol.
func (p Provider) IsAnthropic() bool { return p.Kind == ProviderAnthropic }

// Clone returns a copy that shares no mutable state with p.
func (p Provider) Clone() Provider {
	p.ExtraHeaders = maps.Clone(p.ExtraHeaders)
	return p
}

// OpenAI returns the OpenAI provider.
func OpenAI(key string) Provider {
	return Provider{Kind: ProviderOpenAI, Name: "openai", URL: OpenAIURL, Key: key}
}

// OpenRouter returns the OpenRouter provider.
func OpenRouter(key string) Provider {
	return Provider{Kind: ProviderOpenAI, Name: "openrouter", URL: OpenRouterURL, Key: key}
}

// Requesty returns the Requesty router provider.
func Requesty(key string) Provider {
	return Provider{Kind: ProviderOpenAI, Name: "requesty", URL: RequestyURL, Key: key}
}

// XAI returns the xAI provider.
func XAI(key string) Provider {
	return Provider{Kind: ProviderOpenAI, Name: "xai", URL: XAIURL, Key: key}
}

// Anthropic returns the Anthropic provider.
func Anthropic(key string) Provider {
	return Provider{Kind: ProviderAnthropic, Name: "anthropic", URL: AnthropicURL, Key: key}
}

// OpenAICompatible returns a provider for any OpenAI-compatible server.
func OpenAICompatible(url, key string) Provider {
	return Provider{Kind: ProviderOpenAI, URL: url, Key: key}
}
