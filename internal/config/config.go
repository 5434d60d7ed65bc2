// Package config loads switchboard settings from an optional config file,
// SWITCHBOARD_* environment variables, command-line flags and a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	sb "github.com/spetersoncode/switchboard"
	"github.com/spetersoncode/switchboard/client"
	"github.com/spetersoncode/switchboard/internal/retry"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SWITCHBOARD"

// DefaultVersion is announced to providers when no version is configured.
const DefaultVersion = "0.1.0"

var (
	// ErrUnknownProvider is returned for a provider name without a preset
	// and without an explicit kind.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidLogLevel is returned for a log level zap does not know.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// ProviderConfig selects and configures the provider.
type ProviderConfig struct {
	// Name is a preset (openai, openrouter, requesty, xai, anthropic) or a
	// custom name used with Kind and URL.
	Name string `mapstructure:"name"`
	// Kind overrides the preset's protocol family: "openai" or "anthropic".
	Kind string `mapstructure:"kind"`
	// URL overrides the preset's base URL.
	URL string `mapstructure:"url"`
	// Key is the credential. When empty, the provider's conventional
	// environment variable (OPENAI_API_KEY, ANTHROPIC_API_KEY, ...) is used.
	Key     string            `mapstructure:"key"`
	Headers map[string]string `mapstructure:"headers"`
}

// ServerConfig configures the HTTP servers.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config holds everything needed to build a client and run the commands.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	HTTP     sb.HTTPConfig  `mapstructure:"http"`
	Retry    retry.Config   `mapstructure:"retry"`
	Server   ServerConfig   `mapstructure:"server"`

	// Model is the default chat model for the servers.
	Model    string `mapstructure:"model"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
}

// Option customizes loading.
type Option func(*viper.Viper) error

// WithFlag binds a command-line flag to a config key such as "provider.name".
// A flag set on the command line overrides the file and environment.
func WithFlag(key string, flag *pflag.Flag) Option {
	return func(v *viper.Viper) error {
		if flag == nil {
			return nil
		}
		return v.BindPFlag(key, flag)
	}
}

// Load reads configuration. A .env file in the working directory is loaded
// first if present; path names an optional YAML, JSON or TOML file.
// Precedence: flags, SWITCHBOARD_* environment, file, defaults.
func Load(path string, opts ...Option) (*Config, error) {
	_ = godotenv.Load() // Load .env file if present

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	if cfg.Provider.Key == "" {
		cfg.Provider.Key = os.Getenv(keyEnv(cfg.Provider.Name, cfg.Provider.Kind))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.name", "openai")
	v.SetDefault("provider.kind", "")
	v.SetDefault("provider.url", "")
	v.SetDefault("provider.key", "")

	http := sb.DefaultHTTPConfig()
	v.SetDefault("http.connect_timeout", http.ConnectTimeout)
	v.SetDefault("http.read_timeout", http.ReadTimeout)
	v.SetDefault("http.pool_idle_timeout", http.PoolIdleTimeout)
	v.SetDefault("http.pool_max_idle_per_host", http.PoolMaxIdlePerHost)
	v.SetDefault("http.max_redirects", http.MaxRedirects)

	r := retry.DefaultConfig()
	v.SetDefault("retry.max_attempts", r.MaxAttempts)
	v.SetDefault("retry.initial_delay", r.InitialDelay)
	v.SetDefault("retry.max_delay", r.MaxDelay)
	v.SetDefault("retry.multiplier", r.Multiplier)
	v.SetDefault("retry.jitter", r.Jitter)
	v.SetDefault("retry.retry_status_codes", r.RetryStatusCodes)

	v.SetDefault("server.addr", ":8000")
	v.SetDefault("model", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("version", DefaultVersion)
}

// keyEnv returns the conventional API key variable for a provider.
func keyEnv(name, kind string) string {
	switch strings.ToLower(name) {
	case "openrouter":
		return "OPENROUTER_API_KEY"
	case "requesty":
		return "REQUESTY_API_KEY"
	case "xai":
		return "XAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	}
	if sb.ProviderKind(kind) == sb.ProviderAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// Validate checks that the configuration can build a provider.
func (c *Config) Validate() error {
	if _, err := c.ProviderSpec(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if c.HTTP.MaxRedirects < 0 {
		return fmt.Errorf("config: http.max_redirects must not be negative, got %d", c.HTTP.MaxRedirects)
	}
	return nil
}

// ProviderSpec builds the provider described by the configuration.
func (c *Config) ProviderSpec() (sb.Provider, error) {
	pc := c.Provider

	var p sb.Provider
	switch strings.ToLower(pc.Name) {
	case "openai":
		p = sb.OpenAI(pc.Key)
	case "openrouter":
		p = sb.OpenRouter(pc.Key)
	case "requesty":
		p = sb.Requesty(pc.Key)
	case "xai":
		p = sb.XAI(pc.Key)
	case "anthropic":
		p = sb.Anthropic(pc.Key)
	default:
		if pc.Kind == "" || pc.URL == "" {
			return sb.Provider{}, fmt.Errorf("config: %w %q: custom providers need provider.kind and provider.url", ErrUnknownProvider, pc.Name)
		}
		p = sb.Provider{Name: pc.Name, Key: pc.Key}
	}

	if pc.Kind != "" {
		kind := sb.ProviderKind(strings.ToLower(pc.Kind))
		if kind != sb.ProviderOpenAI && kind != sb.ProviderAnthropic {
			return sb.Provider{}, fmt.Errorf("config: %w kind %q", ErrUnknownProvider, pc.Kind)
		}
		p.Kind = kind
	}
	if pc.URL != "" {
		p.URL = pc.URL
	}
	if len(pc.Headers) > 0 {
		p.ExtraHeaders = pc.Headers
	}
	return p, nil
}

// NewLogger builds a zap logger at the configured level. The debug level
// uses the human-readable development encoder.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: %w %q", ErrInvalidLogLevel, c.LogLevel)
	}

	zc := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// NewClient builds the client described by the configuration.
func (c *Config) NewClient(opts ...client.ClientOption) (*client.Client, error) {
	p, err := c.ProviderSpec()
	if err != nil {
		return nil, err
	}
	rc := c.Retry
	return client.New(p, &rc, c.Version, c.HTTP, opts...)
}
