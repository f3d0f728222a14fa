package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bz888/naeyla/internal/api"
	"github.com/bz888/naeyla/internal/logger"
)

// Responder produces the reply for one message.
type Responder interface {
	Reply(ctx context.Context, message string, mode api.Mode) (string, error)
}

type Handler struct {
	responder Responder
	token     string
	model     string
}

// NewHandler serves the /chat contract with responder. When token is
// non-empty every request must carry it as a bearer header or a "token"
// query parameter.
func NewHandler(responder Responder, token, model string) *Handler {
	return &Handler{
		responder: responder,
		token:     token,
		model:     model,
	}
}

type chatReply struct {
	Response string     `json:"response"`
	Mode     api.Mode   `json:"mode"`
	Actions  []struct{} `json:"actions"`
}

type healthReply struct {
	Status   string `json:"status"`
	Model    string `json:"model"`
	Security string `json:"security"`
}

func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	localLogger := logger.NewLogger("chat handler")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !h.authorized(r) {
		localLogger.Warn("rejected request with bad token", "remote", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	defer r.Body.Close()

	// The server treats a missing mode as companion.
	if req.Mode == "" {
		req.Mode = api.DefaultMode
	}

	reply, err := h.responder.Reply(r.Context(), req.Message, req.Mode)
	if err != nil {
		localLogger.Error("responder failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	localLogger.Info("replied", "mode", req.Mode, "chars", len(reply))

	writeJSON(w, http.StatusOK, chatReply{Response: reply, Mode: req.Mode, Actions: []struct{}{}})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	security := "disabled"
	if h.token != "" {
		security = "enabled"
	}
	writeJSON(w, http.StatusOK, healthReply{Status: "ok", Model: h.model, Security: security})
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.token == "" {
		return true
	}
	presented := r.URL.Query().Get("token")
	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		presented = bearer
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(h.token)) == 1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, struct {
		Detail string `json:"detail"`
	}{detail})
}
