package server

import (
	"net/http"

	"github.com/bz888/naeyla/internal/api/server/handlers"
)

func registerRoutes(mux *http.ServeMux, handler *handlers.Handler) {
	mux.HandleFunc("/chat", handler.ChatHandler)
	mux.HandleFunc("/health", handler.HealthHandler)
}
