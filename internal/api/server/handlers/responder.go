package handlers

import (
	"context"
	"fmt"

	"github.com/bz888/naeyla/internal/api"
)

// CannedResponder answers without a model. It is what the development
// endpoint serves so the client can be exercised with no backend running.
type CannedResponder struct{}

var cannedOpeners = map[api.Mode]string{
	api.ModeCompanion: "I'm here with you.",
	api.ModeAdvisor:   "Here's my advice.",
	api.ModeGuardian:  "Let's keep you safe.",
}

func (CannedResponder) Reply(_ context.Context, message string, mode api.Mode) (string, error) {
	opener, ok := cannedOpeners[mode]
	if !ok {
		opener = cannedOpeners[api.DefaultMode]
	}
	return fmt.Sprintf("%s You said: %q", opener, message), nil
}
