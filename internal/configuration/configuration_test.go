package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInitializesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000", config.APIBaseURL)
	require.NotNil(t, config.Auth)
	require.False(t, config.Auth.Enabled)
	require.Equal(t, 60, config.Auth.PollInterval)

	// The file was written so the user can edit it.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestParseMergesDefaultsIntoPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_base_url": "https://api.example.com"}`), 0644))

	config, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com", config.APIBaseURL)
	require.Equal(t, 60, config.Auth.PollInterval)
}

func TestParseEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("CRUDAI_API_BASE_URL", "https://env.example.com")
	t.Setenv("AUTH0_DOMAIN", "tenant.auth0.com")
	t.Setenv("AUTH0_CLIENT_ID", "client-123")

	config, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, "https://env.example.com", config.APIBaseURL)
	require.True(t, config.Auth.Enabled)
	require.Equal(t, "tenant.auth0.com", config.Auth.Domain)
	require.Equal(t, "client-123", config.Auth.ClientID)
}

func TestParseExpandsTokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content, err := json.Marshal(map[string]any{
		"auth": map[string]any{"token_file": "~/token.json"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, content, 0644))

	config, err := Parse(path)
	require.NoError(t, err)
	require.NotContains(t, config.Auth.TokenFile, "~")

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "token.json"), config.Auth.TokenFile)
}
