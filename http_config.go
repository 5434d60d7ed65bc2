package switchboard

// HTTPConfig configures the transport shared by a client's backend.
// Timeouts are in seconds.
type HTTPConfig struct {
	// ConnectTimeout bounds establishing a TCP connection.
	ConnectTimeout uint64 `mapstructure:"connect_timeout" json:"connectTimeout"`
	// ReadTimeout bounds waiting for response headers.
	ReadTimeout uint64 `mapstructure:"read_timeout" json:"readTimeout"`
	// PoolIdleTimeout closes pooled connections idle for longer.
	PoolIdleTimeout uint64 `mapstructure:"pool_idle_timeout" json:"poolIdleTimeout"`
	// PoolMaxIdlePerHost caps idle pooled connections per host.
	PoolMaxIdlePerHost int `mapstructure:"pool_max_idle_per_host" json:"poolMaxIdlePerHost"`
	// MaxRedirects is a hard cap; exceeding it fails the request.
	MaxRedirects int `mapstructure:"max_redirects" json:"maxRedirects"`
}

// DefaultHTTPConfig returns the default transport settings.
//   - 30 second connect timeout
//   - 900 second read timeout
//   - 90 second pool idle timeout
//   - 5 idle connections per host
//   - 10 redirects
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		ConnectTimeout:     30,
		ReadTimeout:        900,
		PoolIdleTimeout:    90,
		PoolMaxIdlePerHost: 5,
		MaxRedirects:       10,
	}
}
