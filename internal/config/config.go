// Package config handles the configuration directory, file paths and
// environment settings.
package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	// AppName is the application directory name.
	AppName = "ltask"

	// StoreFile is the JSON key-value store filename for the file backend.
	StoreFile = "store.json"

	// DatabaseFile is the SQLite database filename for the sqlite backend.
	DatabaseFile = "ltask.db"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultListID is used when neither --list nor LTASK_LIST is set.
	DefaultListID = "default"

	// LogPrefix prefixes every debug log line.
	LogPrefix = "[LTASK] "
)

// Backend names accepted by --backend and LTASK_BACKEND.
const (
	BackendFile        = "file"
	BackendSQLite      = "sqlite"
	BackendGoogleTasks = "googletasks"
)

// Env is the environment-derived part of the configuration.
type Env struct {
	ConfigDir string `env:"LTASK_CONFIG_DIR"`
	Backend   string `env:"LTASK_BACKEND" envDefault:"file"`
	ListID    string `env:"LTASK_LIST" envDefault:"default"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Backend selects the key-value store implementation.
	Backend string

	// ListID is the list identifier the session works on.
	ListID string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// LoadEnv parses LTASK_* environment variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// New creates a Config from the environment, with flag values taking
// precedence over it. Empty arguments mean "not set on the command line".
// The directory falls back to XDG_CONFIG_HOME/ltask or $HOME/.config/ltask.
func New(configDir, backend, listID string) (*Config, error) {
	e, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Dir:     firstNonEmpty(configDir, e.ConfigDir, DefaultConfigDir()),
		Backend: strings.ToLower(firstNonEmpty(backend, e.Backend, BackendFile)),
		ListID:  strings.TrimSpace(firstNonEmpty(listID, e.ListID, DefaultListID)),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the backend name and list identifier.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendGoogleTasks:
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	if strings.TrimSpace(c.ListID) == "" {
		return fmt.Errorf("list identifier required")
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// StorePath returns the path to the JSON key-value store.
func (c *Config) StorePath() string {
	return filepath.Join(c.Dir, StoreFile)
}

// DatabasePath returns the path to the SQLite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Dir, DatabaseFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// Logger returns the debug logger: w with LogPrefix when Debug is set,
// a discarding logger otherwise.
func (c *Config) Logger(w io.Writer) *log.Logger {
	if !c.Debug || w == nil {
		return log.New(io.Discard, "", 0)
	}
	return log.New(w, LogPrefix, 0)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
