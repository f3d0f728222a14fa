package config

import "time"

const (
	DefaultBaseURL  = "http://localhost:7861"
	DefaultToken    = "naeyla-xs-dev-token-change-in-prod"
	DefaultTimeout  = 60 * time.Second
	DefaultMode     = "companion"
	DefaultMockAddr = "127.0.0.1:7861"
)

// DefaultConfig returns the configuration used when no file, environment
// or flag overrides anything.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  DefaultBaseURL,
		Token:    DefaultToken,
		Auth:     AuthBearer,
		Timeout:  DefaultTimeout,
		Mode:     DefaultMode,
		MockAddr: DefaultMockAddr,
	}
}
