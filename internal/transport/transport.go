// Package transport builds the HTTP client shared by a switchboard backend.
package transport

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	sb "github.com/spetersoncode/switchboard"
)

// keepAlive is the TCP keep-alive period for dialed connections.
const keepAlive = 30 * time.Second

// New builds an *http.Client from cfg.
//
// Zero values fall back to sb.DefaultHTTPConfig. ReadTimeout bounds the wait
// for response headers and every read of the body after that, not the whole
// exchange, so long streams survive while a stalled one fails. Redirects
// beyond MaxRedirects fail with sb.ErrTooManyRedirects.
func New(cfg sb.HTTPConfig) *http.Client {
	cfg = withDefaults(cfg)

	return &http.Client{
		Transport:     NewTransport(cfg),
		CheckRedirect: redirectPolicy(cfg.MaxRedirects),
	}
}

// NewTransport builds an *http.Transport starting from a clone of
// http.DefaultTransport and applying the configured timeouts and pool limits.
func NewTransport(cfg sb.HTTPConfig) *http.Transport {
	cfg = withDefaults(cfg)

	base, _ := http.DefaultTransport.(*http.Transport)
	var t *http.Transport
	if base != nil {
		t = base.Clone()
	} else {
		t = &http.Transport{}
	}

	t.DialContext = idleTimeoutDialer(&net.Dialer{
		Timeout:   seconds(cfg.ConnectTimeout),
		KeepAlive: keepAlive,
	}, seconds(cfg.ReadTimeout))
	t.TLSHandshakeTimeout = seconds(cfg.ConnectTimeout)
	t.ResponseHeaderTimeout = seconds(cfg.ReadTimeout)
	t.IdleConnTimeout = seconds(cfg.PoolIdleTimeout)
	t.MaxIdleConnsPerHost = cfg.PoolMaxIdlePerHost
	t.ForceAttemptHTTP2 = true
	return t
}

// RefreshTimeout is the upper bound for one request whose caller may have
// detached from it: connecting plus one full read timeout.
func RefreshTimeout(cfg sb.HTTPConfig) time.Duration {
	cfg = withDefaults(cfg)
	return seconds(cfg.ConnectTimeout) + seconds(cfg.ReadTimeout)
}

// idleTimeoutDialer wraps every dialed connection so each Read must make
// progress within timeout.
func idleTimeoutDialer(d *net.Dialer, timeout time.Duration) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		return &idleTimeoutConn{Conn: conn, timeout: timeout}, nil
	}
}

// idleTimeoutConn pushes the read deadline forward before every Read.
type idleTimeoutConn struct {
	net.Conn
	timeout time.Duration
}

func (c *idleTimeoutConn) Read(p []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(p)
}

func redirectPolicy(max int) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) > max {
			return fmt.Errorf("%w: stopped after %d redirects to %s", sb.ErrTooManyRedirects, max, req.URL.Redacted())
		}
		return nil
	}
}

func withDefaults(cfg sb.HTTPConfig) sb.HTTPConfig {
	def := sb.DefaultHTTPConfig()
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = def.ConnectTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.PoolIdleTimeout == 0 {
		cfg.PoolIdleTimeout = def.PoolIdleTimeout
	}
	if cfg.PoolMaxIdlePerHost <= 0 {
		cfg.PoolMaxIdlePerHost = def.PoolMaxIdlePerHost
	}
	if cfg.MaxRedirects < 0 {
		cfg.MaxRedirects = 0
	}
	return cfg
}

func seconds(s uint64) time.Duration {
	return time.Duration(s) * time.Second
}
