// Package server is a development stand-in for the inference endpoint. It
// speaks the same /chat and /health contract with canned replies.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bz888/naeyla/internal/api/server/handlers"
	"github.com/bz888/naeyla/internal/logger"
)

const mockModel = "canned (development)"

// NewMux returns the routes of the development endpoint.
func NewMux(responder handlers.Responder, token string) *http.ServeMux {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers.NewHandler(responder, token, mockModel))
	return mux
}

// Run serves on addr until ctx is cancelled.
func Run(ctx context.Context, addr, token string) error {
	localLogger := logger.NewLogger("mock server")

	srv := &http.Server{
		Addr:              addr,
		Handler:           NewMux(handlers.CannedResponder{}, token),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		localLogger.Info("mock endpoint listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		localLogger.Info("shutting down mock endpoint")
		return srv.Shutdown(shutdownCtx)
	}
}
