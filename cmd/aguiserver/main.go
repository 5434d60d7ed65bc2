// Command aguiserver exposes a switchboard client to AG-UI frontends over
// Server-Sent Events.
//
// Settings come from SWITCHBOARD_* environment variables, an optional
// config file named by -config and a .env file:
//
//	SWITCHBOARD_PROVIDER_NAME - Provider preset or custom name (default: openai)
//	SWITCHBOARD_PROVIDER_URL  - Base URL override
//	SWITCHBOARD_MODEL         - Default model when a request names none
//	SWITCHBOARD_SERVER_ADDR   - Listen address (default: :8000)
//	OPENAI_API_KEY, ANTHROPIC_API_KEY, ... - Provider credentials
//
// Routes:
//
//	POST /api/chat  - run a chat, streaming AG-UI events
//	GET  /api/models - list the provider's models
//	GET  /health
//	GET  /metrics   - Prometheus metrics
//
// Usage:
//
//	SWITCHBOARD_PROVIDER_NAME=anthropic go run ./cmd/aguiserver
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	sb "github.com/spetersoncode/switchboard"
	"github.com/spetersoncode/switchboard/client"
	"github.com/spetersoncode/switchboard/internal/config"
)

func main() {
	path := flag.String("config", "", "config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c, err := cfg.NewClient(client.WithLogger(logger), client.WithMetrics(reg))
	if err != nil {
		logger.Fatal("failed to create client", zap.Error(err))
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newMux(c, sb.ModelID(cfg.Model), reg, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE needs no write timeout
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}()

	logger.Info("AG-UI server starting",
		zap.String("addr", cfg.Server.Addr),
		zap.String("provider", c.Provider().DisplayName()),
		zap.String("default_model", cfg.Model),
	)

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

// backend is what the routes need from the client.
type backend interface {
	client.Chatter
	Models(ctx context.Context) ([]sb.Model, error)
}

func newMux(c backend, defaultModel sb.ModelID, gatherer prometheus.Gatherer, logger *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/chat", corsMiddleware(NewChatHandler(c, defaultModel, logger)))
	mux.Handle("GET /api/models", corsMiddleware(modelsHandler(c, logger)))
	mux.HandleFunc("GET /health", healthHandler)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

func modelsHandler(c backend, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		models, err := c.Models(r.Context())
		if err != nil {
			logger.Warn("listing models failed", zap.Error(err))
			status := http.StatusBadGateway
			if sb.IsTransient(err) {
				status = http.StatusServiceUnavailable
			}
			http.Error(w, err.Error(), status)
			return
		}
		if models == nil {
			models = []sb.Model{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"models": models})
	})
}
