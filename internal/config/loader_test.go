package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvBaseURL, EnvToken, EnvAuth, EnvTimeout, EnvMode, EnvLogPath, EnvDev} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		env    map[string]string
		expect func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults only",
			file: "",
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name: "file overrides defaults",
			file: "base_url: http://10.0.0.2:9000\nauth: query\ntimeout: 5s\nmode: guardian\n",
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://10.0.0.2:9000", cfg.BaseURL)
				assert.Equal(t, AuthQuery, cfg.Auth)
				assert.Equal(t, 5*time.Second, cfg.Timeout)
				assert.Equal(t, "guardian", cfg.Mode)
				assert.Equal(t, DefaultToken, cfg.Token)
			},
		},
		{
			name: "env overrides file",
			file: "base_url: http://10.0.0.2:9000\ntoken: from-file\n",
			env: map[string]string{
				EnvToken:   "from-env",
				EnvTimeout: "90s",
				EnvDev:     "true",
			},
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://10.0.0.2:9000", cfg.BaseURL)
				assert.Equal(t, "from-env", cfg.Token)
				assert.Equal(t, 90*time.Second, cfg.Timeout)
				assert.True(t, cfg.Dev)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var path string
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			} else {
				t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			}

			cfg, err := Load(path)
			require.NoError(t, err)
			tt.expect(t, cfg)
		})
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "timeout: [not, a, duration]\n"))
	assert.Error(t, err)
}

func TestLoadBadEnvTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvTimeout, "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, EnvTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"no auth without token", func(c *Config) { c.Auth = AuthNone; c.Token = "" }, false},
		{"bearer without token", func(c *Config) { c.Token = "" }, true},
		{"query without token", func(c *Config) { c.Auth = AuthQuery; c.Token = "" }, true},
		{"unknown auth", func(c *Config) { c.Auth = "cookie" }, true},
		{"bad scheme", func(c *Config) { c.BaseURL = "ftp://localhost:7861" }, true},
		{"no host", func(c *Config) { c.BaseURL = "http://" }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestFlagsApplyOnlyChanged(t *testing.T) {
	var flags Flags
	fs := pflag.NewFlagSet("naeyla", pflag.ContinueOnError)
	flags.Bind(fs)
	require.NoError(t, fs.Parse([]string{"--mode", "advisor", "--timeout", "3s"}))

	cfg := DefaultConfig()
	cfg.BaseURL = "http://from-file:1234"
	flags.Apply(cfg, fs)

	assert.Equal(t, "advisor", cfg.Mode)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "http://from-file:1234", cfg.BaseURL)
	assert.Equal(t, AuthBearer, cfg.Auth)
}
