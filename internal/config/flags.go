package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags holds the command-line overrides. Only flags the user actually set
// are applied on top of the loaded configuration.
type Flags struct {
	ConfigPath string
	BaseURL    string
	Token      string
	Auth       string
	Mode       string
	LogPath    string
	Timeout    time.Duration
	Dev        bool
}

func (f *Flags) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to the YAML config file")
	fs.StringVar(&f.BaseURL, "url", DefaultBaseURL, "Base URL of the inference endpoint")
	fs.StringVar(&f.Token, "token", "", "Endpoint access token")
	fs.StringVar(&f.Auth, "auth", string(AuthBearer), "How to send the token: none, bearer or query")
	fs.StringVar(&f.Mode, "mode", DefaultMode, "Starting mode: companion, advisor or guardian")
	fs.StringVar(&f.LogPath, "logPath", "", "Directory to save the log file")
	fs.DurationVar(&f.Timeout, "timeout", DefaultTimeout, "Deadline for a single reply")
	fs.BoolVar(&f.Dev, "dev", false, "Development mode")
}

func (f *Flags) Apply(cfg *Config, fs *pflag.FlagSet) {
	if fs.Changed("url") {
		cfg.BaseURL = f.BaseURL
	}
	if fs.Changed("token") {
		cfg.Token = f.Token
	}
	if fs.Changed("auth") {
		cfg.Auth = AuthMode(f.Auth)
	}
	if fs.Changed("mode") {
		cfg.Mode = f.Mode
	}
	if fs.Changed("logPath") {
		cfg.LogPath = f.LogPath
	}
	if fs.Changed("timeout") {
		cfg.Timeout = f.Timeout
	}
	if fs.Changed("dev") {
		cfg.Dev = f.Dev
	}
}
