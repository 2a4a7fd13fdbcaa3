package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/timoelan/crudai/internal/file"
)

var defaultConfig = Config{
	APIBaseURL:     "http://localhost:8000",
	RequestTimeout: 0,

	Auth: &AuthConfig{
		PollInterval: 60,
		TokenFile:    "~/.config/crudai/token.json",
	},
}

// Config holds configuration for the crudai tool.
type Config struct {
	// Base URL of the chat backend.
	APIBaseURL string `json:"api_base_url"`
	// Request timeout in seconds. 0 disables the timeout.
	RequestTimeout int `json:"request_timeout"`

	Auth *AuthConfig `json:"auth"`
}

// AuthConfig holds the identity provider settings. When Enabled is false the
// client talks to the backend without bearer tokens.
type AuthConfig struct {
	Enabled     bool   `json:"enabled"`
	Domain      string `json:"domain"`
	ClientID    string `json:"client_id"`
	Audience    string `json:"audience"`
	RedirectURI string `json:"redirect_uri"`
	// Interval in seconds for the fallback auth-state poll.
	PollInterval int `json:"poll_interval"`
	// Where the token obtained at login is cached.
	TokenFile string `json:"token_file"`
}

// Parse a configuration file, fill in defaults and apply env overrides.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}
	if err := mergo.Merge(config, defaultConfig); err != nil {
		return nil, errors.Wrap(err, "merging defaults")
	}

	applyEnv(config)

	expandedTokenFile, err := file.ExpandPath(config.Auth.TokenFile)
	if err != nil {
		return nil, errors.Wrap(err, "expanding token file path")
	}
	config.Auth.TokenFile = expandedTokenFile
	return config, nil
}

// applyEnv lets the environment supply or override the backend and identity
// provider settings. A .env file in the working directory is honored.
func applyEnv(config *Config) {
	godotenv.Load()

	if v := os.Getenv("CRUDAI_API_BASE_URL"); v != "" {
		config.APIBaseURL = v
	}
	if v := os.Getenv("AUTH0_DOMAIN"); v != "" {
		config.Auth.Domain = v
		config.Auth.Enabled = true
	}
	if v := os.Getenv("AUTH0_CLIENT_ID"); v != "" {
		config.Auth.ClientID = v
	}
	if v := os.Getenv("AUTH0_AUDIENCE"); v != "" {
		config.Auth.Audience = v
	}
	if v := os.Getenv("AUTH0_REDIRECT_URI"); v != "" {
		config.Auth.RedirectURI = v
	}
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
