// Package chat holds the conversation state of the client: the transcript,
// the active mode and the one-request-per-turn exchange with the endpoint.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bz888/naeyla/internal/api"
	"github.com/bz888/naeyla/internal/config"
	"github.com/bz888/naeyla/internal/logger"
	"github.com/google/uuid"
)

// FallbackReply is rendered as the assistant's answer whenever a turn fails.
const FallbackReply = "Sorry, I can't reach my backend right now. Is the Naeyla server running?"

// ErrAwaitingReply is returned by Submit while the previous turn is in flight.
var ErrAwaitingReply = errors.New("still waiting for the previous reply")

// Backend sends one message to the inference endpoint.
type Backend interface {
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// View renders controller state. Implementations must tolerate calls from
// any goroutine.
type View interface {
	// AppendMessage renders m at the end of the transcript and scrolls to it.
	AppendMessage(m Message)
	ClearInput()
	SetTyping(typing bool)
	// SetActiveMode marks mode as the only active mode control.
	SetActiveMode(mode api.Mode)
}

type Controller struct {
	backend Backend
	view    View
	timeout time.Duration
	now     func() time.Time
	log     *slog.Logger

	transcript Transcript

	mu      sync.Mutex
	mode    api.Mode
	pending bool
}

func NewController(backend Backend, view View, cfg *config.Config) *Controller {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	c := &Controller{
		backend: backend,
		view:    view,
		timeout: timeout,
		now:     time.Now,
		log:     logger.NewLogger("chat"),
	}
	c.SelectMode(cfg.Mode)
	return c
}

// SelectMode makes id the active mode. Unknown ids select the default.
func (c *Controller) SelectMode(id string) api.Mode {
	mode, ok := api.ParseMode(id)
	if !ok {
		c.log.Debug("unknown mode, using default", "id", id, "mode", mode)
	}

	c.mu.Lock()
	c.mode = mode
	c.mu.Unlock()

	c.view.SetActiveMode(mode)
	return mode
}

func (c *Controller) ActiveMode() api.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Pending reports whether a turn is awaiting its reply.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *Controller) Transcript() []Message {
	return c.transcript.Messages()
}

// Submit runs one turn and blocks until its reply, or the fallback reply,
// has been rendered. Blank input is ignored. Endpoint failures are shown
// to the user and never returned; the only error is ErrAwaitingReply.
func (c *Controller) Submit(ctx context.Context, raw string) error {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return ErrAwaitingReply
	}
	c.pending = true
	mode := c.mode
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.pending = false
		c.mu.Unlock()
	}()

	turn := uuid.New()
	log := c.log.With("turn", turn.String(), "mode", mode)

	c.add(newMessage(turn, SenderUser, text, mode, c.now()))
	c.view.ClearInput()
	c.view.SetTyping(true)

	reply := c.exchange(ctx, log, api.ChatRequest{Message: text, Mode: mode})

	c.view.SetTyping(false)
	c.add(newMessage(turn, SenderAssistant, reply, mode, c.now()))
	return nil
}

func (c *Controller) exchange(ctx context.Context, log *slog.Logger, req api.ChatRequest) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := c.now()
	log.Info("sending message", "chars", len(req.Message))

	resp, err := c.backend.Chat(ctx, req)
	if err == nil && resp == nil {
		err = api.ErrMissingResponse
	}
	if err != nil {
		log.Error("request failed", "error", err, "elapsed", c.now().Sub(started))
		return FallbackReply
	}

	log.Info("reply received", "chars", len(resp.Response), "elapsed", c.now().Sub(started))
	return resp.Response
}

func (c *Controller) add(m Message) {
	c.transcript.append(m)
	c.view.AppendMessage(m)
}
