// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/metrics"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/logger"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/validator"
)

// DefaultMaxBodyBytes caps the request body of the validate endpoint.
const DefaultMaxBodyBytes int64 = 64 << 10

// Validator is the validation service behind the API.
type Validator interface {
	Validate(ctx context.Context, rawURL string) (*validator.Report, error)
}

// Config holds the HTTP server configuration.
type Config struct {
	// Addr is the listen address (default: ":8080")
	Addr string

	// Validator answers validate requests (required)
	Validator Validator

	// Version is reported by the health endpoint
	Version string

	// Logger receives request and failure logs (optional, discards if nil)
	Logger logger.Logger

	// MaxBodyBytes caps request bodies (default: DefaultMaxBodyBytes)
	MaxBodyBytes int64

	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes
	WriteTimeout time.Duration

	// IdleTimeout is the maximum amount of time to wait for the next request
	IdleTimeout time.Duration
}

// Server is the HTTP API server.
type Server struct {
	server       *http.Server
	validator    Validator
	version      string
	maxBodyBytes int64
	log          logger.Logger
}

// NewServer creates a new HTTP API server.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("httpapi: config is required")
	}
	if cfg.Validator == nil {
		return nil, errors.New("httpapi: validator is required")
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	// Validation dials the remote host and may fetch a CRL.
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 90 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Server{
		validator:    cfg.Validator,
		version:      cfg.Version,
		maxBodyBytes: cfg.MaxBodyBytes,
		log:          log,
	}

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s, nil
}

// routes configures the chi router with all routes and middleware.
func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.recovery)
	r.Use(s.logging)
	r.Use(metrics.HTTPMiddleware)

	r.Get("/health", s.handleHealth)
	r.Head("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
	})

	return r
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.server.Handler }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.server.Addr }

// Start listens on the configured address and serves until Stop.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(ln)
}

// Serve serves on ln until Stop.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Printf("Starting HTTP server on %s", ln.Addr())

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Println("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		s.log.Errorf("Failed to shutdown server: %v", err)
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.log.Println("HTTP server stopped")
	return nil
}
