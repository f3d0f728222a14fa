package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/bz888/naeyla/internal/config"
	"github.com/bz888/naeyla/internal/logger"
)

const defaultMaxBodySize = 8 << 20

var (
	// ErrMissingResponse is returned when a 2xx reply has no "response" field.
	ErrMissingResponse = errors.New("reply has no response field")
	// ErrReplyTooLarge is returned when a reply body exceeds the read limit.
	ErrReplyTooLarge = errors.New("reply too large")
)

// StatusError is returned for any non-2xx reply.
type StatusError struct {
	Code   int
	Status string
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("endpoint returned %s: %s", e.Status, e.Detail)
	}
	return "endpoint returned " + e.Status
}

// Client talks to the inference endpoint.
type Client struct {
	http      *http.Client
	auth      Authenticator
	chatURL   *url.URL
	healthURL *url.URL
	maxBody   int64
	log       *slog.Logger
}

// NewClient creates an endpoint client from the resolved configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	auth, err := NewAuthenticator(cfg.Auth, cfg.Token)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		auth:      auth,
		chatURL:   base.JoinPath("chat"),
		healthURL: base.JoinPath("health"),
		maxBody:   defaultMaxBodySize,
		log:       logger.NewLogger("api client"),
	}, nil
}

// Chat sends one message and returns the decoded reply.
func (c *Client) Chat(ctx context.Context, chatReq ChatRequest) (*ChatResponse, error) {
	body, err := encodeRequest(chatReq)
	if err != nil {
		return nil, fmt.Errorf("serialize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var reply chatReply
	if err := c.do(req, &reply); err != nil {
		return nil, err
	}
	if reply.Response == nil {
		return nil, ErrMissingResponse
	}

	if reply.Mode != "" && reply.Mode != chatReq.Mode {
		c.log.Warn("reply mode differs from request", "sent", chatReq.Mode, "received", reply.Mode)
	}
	if len(reply.Actions) > 0 {
		c.log.Info("server executed actions", "count", len(reply.Actions))
	}

	return &ChatResponse{
		Response: *reply.Response,
		Mode:     reply.Mode,
		Actions:  reply.Actions,
	}, nil
}

// Health queries GET /health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var health HealthResponse
	if err := c.do(req, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *Client) do(req *http.Request, out any) error {
	c.auth.Authenticate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Error("failed to close response body", "error", err)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if int64(len(data)) > c.maxBody {
		return fmt.Errorf("%w: more than %d bytes", ErrReplyTooLarge, c.maxBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode, Status: resp.Status}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			statusErr.Detail = eb.Detail
		}
		return statusErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// encodeRequest marshals without HTML escaping so the body matches what a
// browser's JSON.stringify would send.
func encodeRequest(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
