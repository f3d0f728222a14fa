package config

import "time"

// AuthMode selects how the endpoint credential is attached to requests.
type AuthMode string

const (
	AuthNone   AuthMode = "none"
	AuthBearer AuthMode = "bearer" // Authorization: Bearer <token>
	AuthQuery  AuthMode = "query"  // ?token=<token>
)

// Config is resolved once at startup and passed to every component that
// talks to the inference endpoint.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Auth    AuthMode      `yaml:"auth"`
	Timeout time.Duration `yaml:"timeout"`

	// Mode is the personality preset selected when the client starts.
	Mode string `yaml:"mode"`

	Dev     bool   `yaml:"dev"`
	LogPath string `yaml:"log_path"`

	// MockAddr is the listen address of the development endpoint.
	MockAddr string `yaml:"mock_addr"`
}
