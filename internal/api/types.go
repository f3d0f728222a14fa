package api

import "encoding/json"

// Mode is the personality preset sent with every message.
type Mode string

const (
	ModeCompanion Mode = "companion"
	ModeAdvisor   Mode = "advisor"
	ModeGuardian  Mode = "guardian"

	DefaultMode = ModeCompanion
)

// Modes lists every mode in display order.
func Modes() []Mode {
	return []Mode{ModeCompanion, ModeAdvisor, ModeGuardian}
}

// ParseMode resolves a mode identifier. Unknown identifiers resolve to
// DefaultMode and ok is false.
func ParseMode(id string) (mode Mode, ok bool) {
	for _, m := range Modes() {
		if string(m) == id {
			return m, true
		}
	}
	return DefaultMode, false
}

// ChatRequest is the body of POST /chat. Field order is part of the wire
// format.
type ChatRequest struct {
	Message string `json:"message"`
	Mode    Mode   `json:"mode"`
}

// ChatResponse is a decoded /chat reply. Only Response is required; Mode
// and Actions are sent by some server builds and are informational.
type ChatResponse struct {
	Response string
	Mode     Mode
	Actions  []Action
}

// Action is a browser action the server reports having executed.
type Action struct {
	Action string          `json:"action"`
	Params map[string]any  `json:"params,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// chatReply mirrors the server body so a missing "response" can be told
// apart from an empty one.
type chatReply struct {
	Response *string  `json:"response"`
	Mode     Mode     `json:"mode,omitempty"`
	Actions  []Action `json:"actions,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Model    string `json:"model"`
	Browser  *bool  `json:"browser,omitempty"`
	Security string `json:"security,omitempty"`
}

// errorBody is FastAPI's default error shape.
type errorBody struct {
	Detail string `json:"detail"`
}
