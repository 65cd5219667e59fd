// Package server exposes the HTTP surface: the Evolution API webhook and a
// health endpoint.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/finzap/finzap/internal/model"
	"github.com/finzap/finzap/internal/transport"
)

const (
	maxWebhookBody = 1 << 20
	handleTimeout  = 60 * time.Second
)

// MessageHandler processes one inbound message.
type MessageHandler interface {
	HandleMessage(ctx context.Context, in model.InboundMessage) error
}

// HealthChecker reports transport connectivity.
type HealthChecker interface {
	ConnectionState(ctx context.Context) (string, error)
}

// Server is the webhook HTTP server.
type Server struct {
	httpServer *http.Server
	handler    MessageHandler
	health     HealthChecker
}

// New builds the server. health may be nil, in which case /healthz only
// reports process liveness.
func New(addr string, handler MessageHandler, health HealthChecker) *Server {
	s := &Server{
		handler: handler,
		health:  health,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	}))

	router.Post("/webhook/evolution", s.handleWebhook)
	router.Get("/healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// handleWebhook acknowledges the event immediately and processes it in the
// background. Evolution retries deliveries on non-200 responses, so
// payloads we cannot use are still acknowledged with 200.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		slog.Warn("Failed to read webhook body", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	inbound, err := transport.ParseWebhook(body)
	if err != nil {
		if !errors.Is(err, transport.ErrUnsupportedMessage) {
			slog.Warn("Ignoring invalid webhook payload", "error", err)
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	go func(in model.InboundMessage) {
		ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
		defer cancel()
		if err := s.handler.HandleMessage(ctx, in); err != nil {
			slog.Error("Failed to handle message", "sender", in.SenderID, "error", err)
		}
	}(*inbound)

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		state, err := s.health.ConnectionState(r.Context())
		if err != nil {
			slog.Warn("Health check transport failure", "error", err)
			http.Error(w, "transport unavailable", http.StatusServiceUnavailable)
			return
		}
		if state != "open" {
			http.Error(w, "instance "+state, http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
