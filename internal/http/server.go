// Package http wires the chi router, middleware, and net/http server for the
// dashboard API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/seenlyhq/seenly/internal/auth"
	"github.com/seenlyhq/seenly/internal/http/handler"
	mw "github.com/seenlyhq/seenly/internal/http/middleware"
)

// Default configuration values for the HTTP server.
const (
	DefaultHost              = "" // all interfaces
	DefaultPort              = "8080"
	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultMaxHeaderBytes    = 1 << 20 // 1MB
	DefaultMaxBodyBytes      = 1 << 20 // 1MB
)

// ServerConfig holds configuration for the HTTP server and router.
type ServerConfig struct {
	Host              string
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	MaxHeaderBytes    int
	MaxBodyBytes      int64
}

// applyDefaults sets default values for any unset (zero) fields.
func (cfg *ServerConfig) applyDefaults() {
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.MaxHeaderBytes <= 0 {
		cfg.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// APIServer wraps the HTTP server with router and all HTTP concerns.
type APIServer struct {
	server *http.Server
}

// NewAPIServer creates the HTTP server with router and middleware configured.
// API routes sit behind API-key auth; the billing webhook authenticates with
// its own shared secret instead.
func NewAPIServer(server *handler.Server, billing *handler.BillingWebhook, assets *handler.Assets, authenticator *auth.Authenticator, cfg ServerConfig) *APIServer {
	cfg.applyDefaults()

	router := setupRouter(server, billing, assets, authenticator, cfg)

	return &APIServer{
		server: &http.Server{
			Addr:              cfg.Host + ":" + cfg.Port,
			Handler:           otelhttp.NewHandler(router, "seenly-api"),
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			MaxHeaderBytes:    cfg.MaxHeaderBytes,
		},
	}
}

// setupRouter creates and configures the Chi router with all middleware and routes.
func setupRouter(server *handler.Server, billing *handler.BillingWebhook, assets *handler.Assets, authenticator *auth.Authenticator, cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middlewares (applied to all routes)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.MaxBodyBytes(cfg.MaxBodyBytes))

	// Health check endpoint (no auth required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			slog.ErrorContext(r.Context(), "Failed to write health check response", "error", err)
		}
	})

	// Billing webhook (shared-secret auth, not API keys)
	r.Post("/billing/webhook", billing.Handle)

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		authMiddleware := mw.NewAuth(authenticator)
		r.Use(authMiddleware.Validate)

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", server.ListBrands)
			r.Post("/", server.CreateBrand)
			r.Get("/{brandID}", server.GetBrand)
			r.Patch("/{brandID}", server.UpdateBrand)
			r.Delete("/{brandID}", server.DeleteBrand)

			r.Get("/{brandID}/tags", server.ListTags)
			r.Post("/{brandID}/tags", server.CreateTag)

			r.Get("/{brandID}/content", server.ListContent)
			r.Post("/{brandID}/content", server.CreateContent)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", server.ListTasks)
			r.Post("/", server.CreateTask)
			r.Get("/{taskID}", server.GetTask)
			r.Patch("/{taskID}", server.UpdateTask)
			r.Delete("/{taskID}", server.DeleteTask)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Patch("/{tagID}", server.UpdateTag)
			r.Delete("/{tagID}", server.DeleteTag)
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/{contentID}", server.GetContent)
			r.Patch("/{contentID}", server.UpdateContent)
			r.Delete("/{contentID}", server.DeleteContent)

			r.Put("/{contentID}/asset", assets.Upload)
			r.Get("/{contentID}/asset", assets.Download)
			r.Delete("/{contentID}/asset", assets.Delete)
		})

		r.Route("/integrations", func(r chi.Router) {
			r.Get("/", server.ListIntegrations)
			r.Post("/", server.ConnectIntegration)
			r.Get("/{integrationID}", server.GetIntegration)
			r.Patch("/{integrationID}", server.UpdateIntegration)
			r.Delete("/{integrationID}", server.DisconnectIntegration)
		})

		r.Get("/subscription", server.GetSubscription)

		r.Route("/prompts", func(r chi.Router) {
			r.Get("/", server.ListPrompts)
			r.Post("/", server.CreatePrompt)
			r.Get("/{promptID}", server.GetPrompt)
			r.Patch("/{promptID}", server.UpdatePrompt)
			r.Delete("/{promptID}", server.DeletePrompt)
		})

		r.Route("/members", func(r chi.Router) {
			r.Get("/", server.ListMembers)
			r.Put("/{memberID}", server.SyncMember)
		})
	})

	return r
}

// Start starts the HTTP server.
func (s *APIServer) Start() error {
	slog.Info("Starting HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
// The provided context controls the timeout for outstanding requests.
func (s *APIServer) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
