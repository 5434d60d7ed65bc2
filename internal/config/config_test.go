package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	sb "github.com/spetersoncode/switchboard"
	"github.com/spetersoncode/switchboard/internal/retry"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider.Name)
	assert.Equal(t, sb.DefaultHTTPConfig(), cfg.HTTP)
	assert.Equal(t, retry.DefaultConfig(), cfg.Retry)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultVersion, cfg.Version)
	assert.Equal(t, ":8000", cfg.Server.Addr)

	p, err := cfg.ProviderSpec()
	require.NoError(t, err)
	assert.Equal(t, sb.OpenAIURL, p.URL)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "switchboard.yaml", `
provider:
  name: openrouter
  key: file-key
  headers:
    X-Title: switchboard
http:
  read_timeout: 120
  max_redirects: 0
retry:
  initial_delay: 250ms
  retry_status_codes: [429, 503]
model: openai/gpt-4o
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openrouter", cfg.Provider.Name)
	assert.Equal(t, "file-key", cfg.Provider.Key)
	assert.Equal(t, uint64(120), cfg.HTTP.ReadTimeout)
	assert.Equal(t, uint64(30), cfg.HTTP.ConnectTimeout, "unset keys keep defaults")
	assert.Equal(t, 0, cfg.HTTP.MaxRedirects)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.InitialDelay)
	assert.Equal(t, []int{429, 503}, cfg.Retry.RetryStatusCodes)
	assert.Equal(t, "openai/gpt-4o", cfg.Model)

	p, err := cfg.ProviderSpec()
	require.NoError(t, err)
	assert.Equal(t, sb.ProviderOpenAI, p.Kind)
	assert.Equal(t, sb.OpenRouterURL, p.URL)
	// Viper lowercases map keys; HTTP header names are case-insensitive.
	assert.Equal(t, "switchboard", p.ExtraHeaders["x-title"])
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "switchboard.json", `{"provider": {"name": "openai"}, "log_level": "warn"}`)
	t.Setenv("SWITCHBOARD_PROVIDER_NAME", "anthropic")
	t.Setenv("SWITCHBOARD_PROVIDER_KEY", "env-key")
	t.Setenv("SWITCHBOARD_HTTP_POOL_MAX_IDLE_PER_HOST", "12")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider.Name)
	assert.Equal(t, "env-key", cfg.Provider.Key)
	assert.Equal(t, 12, cfg.HTTP.PoolMaxIdlePerHost)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadFallsBackToConventionalKeyVariable(t *testing.T) {
	t.Setenv("SWITCHBOARD_PROVIDER_NAME", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := Load("")
	require.NoError(t, err)

	p, err := cfg.ProviderSpec()
	require.NoError(t, err)
	assert.Equal(t, "sk-ant", p.Key)
	assert.Equal(t, sb.ProviderAnthropic, p.Kind)
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	t.Setenv("SWITCHBOARD_PROVIDER_NAME", "xai")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("provider", "", "")
	fs.String("base-url", "", "")
	require.NoError(t, fs.Parse([]string{"--provider", "local", "--base-url", "http://localhost:11434/v1"}))
	t.Setenv("SWITCHBOARD_PROVIDER_KIND", "openai")

	cfg, err := Load("",
		WithFlag("provider.name", fs.Lookup("provider")),
		WithFlag("provider.url", fs.Lookup("base-url")),
		WithFlag("log_level", fs.Lookup("missing")),
	)
	require.NoError(t, err)

	p, err := cfg.ProviderSpec()
	require.NoError(t, err)
	assert.Equal(t, "local", p.Name)
	assert.Equal(t, "http://localhost:11434/v1", p.URL)
	assert.Equal(t, sb.ProviderOpenAI, p.Kind)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"custom provider without url", func(c *Config) { c.Provider = ProviderConfig{Name: "local", Kind: "openai"} }, ErrUnknownProvider},
		{"unknown kind", func(c *Config) { c.Provider = ProviderConfig{Name: "openai", Kind: "grpc"} }, ErrUnknownProvider},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Provider: ProviderConfig{Name: "openai"}, LogLevel: "info"}
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.target)
		})
	}

	t.Run("negative redirects", func(t *testing.T) {
		cfg := Config{Provider: ProviderConfig{Name: "openai"}, LogLevel: "info"}
		cfg.HTTP.MaxRedirects = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := Config{LogLevel: "warn"}
	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	cfg.LogLevel = "debug"
	logger, err = cfg.NewLogger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewClient(t *testing.T) {
	cfg := &Config{
		Provider: ProviderConfig{Name: "anthropic", Key: "k"},
		HTTP:     sb.DefaultHTTPConfig(),
		Retry:    retry.DefaultConfig(),
		LogLevel: "info",
		Version:  "9.9.9",
	}

	c, err := cfg.NewClient()
	require.NoError(t, err)
	assert.Equal(t, sb.ProviderAnthropic, c.Kind())
	assert.Equal(t, "9.9.9", c.Version())
	assert.Equal(t, cfg.Retry.RetryStatusCodes, c.RetryConfig().RetryStatusCodes)

	cfg.Provider.Key = ""
	_, err = cfg.NewClient()
	assert.Error(t, err, "anthropic needs a key")
}
